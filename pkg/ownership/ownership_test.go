package ownership

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"xTube.com/cmd/model"
	"xTube.com/pkg/database/dbtest"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/metrics"
)

func seedTweet(t *testing.T, db *gorm.DB, owner int64) *model.Tweet {
	tw := &model.Tweet{Content: "first", OwnerID: owner}
	require.NoError(t, db.Create(tw).Error)
	return tw
}

func TestUpdateOwnerOnly(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	tw := seedTweet(t, db, 1)

	var got model.Tweet
	require.NoError(t, Update(ctx, db, &got, tw.ID, 1, map[string]interface{}{"content": "edited"}))
	assert.Equal(t, "edited", got.Content)
	assert.Equal(t, tw.ID, got.ID)

	var other model.Tweet
	errNotOwner := Update(ctx, db, &other, tw.ID, 2, map[string]interface{}{"content": "hijack"})
	var missing model.Tweet
	errMissing := Update(ctx, db, &missing, tw.ID+1, 1, map[string]interface{}{"content": "ghost"})

	require.Error(t, errNotOwner)
	require.Error(t, errMissing)
	assert.Equal(t, errno.ConvertErr(errMissing), errno.ConvertErr(errNotOwner))
	assert.True(t, errors.Is(errNotOwner, errno.NotFoundErr))

	var stored model.Tweet
	require.NoError(t, db.First(&stored, tw.ID).Error)
	assert.Equal(t, "edited", stored.Content)
}

func TestDeleteOwnerOnly(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	tw := seedTweet(t, db, 1)

	var other model.Tweet
	err := Delete(ctx, db, &other, tw.ID, 2)
	assert.True(t, errors.Is(err, errno.NotFoundErr))

	var deleted model.Tweet
	require.NoError(t, Delete(ctx, db, &deleted, tw.ID, 1))
	assert.Equal(t, "first", deleted.Content)

	var n int64
	require.NoError(t, db.Model(&model.Tweet{}).Where("id = ?", tw.ID).Count(&n).Error)
	assert.Zero(t, n)

	err = Delete(ctx, db, &deleted, tw.ID, 1)
	assert.Equal(t, "Tweet not found", errno.ConvertErr(err).ErrMsg)
}

func TestCascadeSwallowsFailures(t *testing.T) {
	var ran []string
	before := testutil.ToFloat64(metrics.CascadeFailures.WithLabelValues("blob"))
	failed := Cascade(context.Background(), "video:1",
		Step{Name: "likes", Run: func(context.Context) error { ran = append(ran, "likes"); return nil }},
		Step{Name: "blob", Run: func(context.Context) error { ran = append(ran, "blob"); return errors.New("minio down") }},
		Step{Name: "comments", Run: func(context.Context) error { ran = append(ran, "comments"); return nil }},
	)
	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"likes", "blob", "comments"}, ran)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CascadeFailures.WithLabelValues("blob")))
}
