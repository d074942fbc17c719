package toggle

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"xTube.com/cmd/model"
	"xTube.com/pkg/database/dbtest"
	"xTube.com/pkg/errno"
)

func likeRelation(owner, target int64, action model.ReactionAction) Relation {
	return Relation{
		Kind:  "like",
		Model: &model.Like{},
		Key: map[string]interface{}{
			"owner_id":    owner,
			"target_kind": model.KindVideo,
			"target_id":   target,
			"action":      action,
		},
		Record: &model.Like{OwnerID: owner, TargetKind: model.KindVideo, TargetID: target, Action: action},
	}
}

func countLikes(t *testing.T, db *gorm.DB, owner, target int64) int64 {
	var n int64
	require.NoError(t, db.Model(&model.Like{}).Where("owner_id = ? AND target_id = ?", owner, target).Count(&n).Error)
	return n
}

func TestFlipParity(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	for n := 1; n <= 6; n++ {
		target := int64(1000 + n)
		var active bool
		var err error
		for i := 0; i < n; i++ {
			active, err = Flip(ctx, db, likeRelation(7, target, model.ActionLiked))
			require.NoError(t, err)
			assert.LessOrEqual(t, countLikes(t, db, 7, target), int64(1))
		}
		assert.Equalf(t, n%2 == 1, active, "after %d toggles", n)
		want := int64(0)
		if n%2 == 1 {
			want = 1
		}
		assert.Equal(t, want, countLikes(t, db, 7, target))
	}
}

func TestFlipActionsAreIndependent(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	liked, err := Flip(ctx, db, likeRelation(1, 2, model.ActionLiked))
	require.NoError(t, err)
	disliked, err := Flip(ctx, db, likeRelation(1, 2, model.ActionDisliked))
	require.NoError(t, err)
	assert.True(t, liked)
	assert.True(t, disliked)
	assert.Equal(t, int64(2), countLikes(t, db, 1, 2))

	liked, err = Flip(ctx, db, likeRelation(1, 2, model.ActionLiked))
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(1), countLikes(t, db, 1, 2))
}

func TestFlipLosesRaceWithConflict(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	_, err := Flip(ctx, db, likeRelation(3, 4, model.ActionLiked))
	require.NoError(t, err)

	// 删除阶段未命中，但插入时记录已被另一个请求写入
	rel := likeRelation(3, 4, model.ActionLiked)
	rel.Key["action"] = model.ActionDisliked
	_, err = Flip(ctx, db, rel)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errno.ConflictErr))
	assert.Equal(t, int64(1), countLikes(t, db, 3, 4))
}

func TestFlipConcurrentKeepsAtMostOne(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Flip(ctx, db, likeRelation(9, 9, model.ActionLiked))
			if err != nil {
				assert.True(t, errors.Is(err, errno.ConflictErr))
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, countLikes(t, db, 9, 9), int64(1))
}
