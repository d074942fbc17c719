package pack

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"

	"xTube.com/config"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/mq"
	"xTube.com/pkg/oss"
	"xTube.com/pkg/security"
)

// Infra 各 handler 共享的外部依赖
type Infra struct {
	Store    oss.BlobStore
	Locker   security.Locker
	Producer mq.MessageProducer
	Probe    func(path string) (float64, error)
}

var infra Infra

// Init 在注册路由前调用一次
func Init(i Infra) {
	if i.Locker == nil {
		i.Locker = security.NopLocker{}
	}
	if i.Producer == nil {
		i.Producer = mq.NopProducer{}
	}
	infra = i
}

func Deps() Infra {
	return infra
}

// Upload 请求内暂存到本地的上传文件
type Upload struct {
	Path string
}

// Cleanup 删除本地暂存文件
func (u *Upload) Cleanup() {
	if u == nil || u.Path == "" {
		return
	}
	if err := os.Remove(u.Path); err != nil && !os.IsNotExist(err) {
		hlog.Warnf("remove temp upload %s failed: %v", u.Path, err)
	}
}

func (u *Upload) PathOrEmpty() string {
	if u == nil {
		return ""
	}
	return u.Path
}

// SaveUpload 保存表单文件到临时目录，缺失且非必需时返回 nil
func SaveUpload(ctx context.Context, c *app.RequestContext, field string, required bool) (*Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		if required {
			return nil, errno.ValidationErr.WithMessage(field + " file is required")
		}
		return nil, nil
	}

	dir := config.ConfigInfo.Server.UploadTempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		hlog.CtxErrorf(ctx, "create upload dir %s failed: %v", dir, err)
		return nil, errno.ServiceErr
	}
	dst := filepath.Join(dir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	if err = c.SaveUploadedFile(fh, dst); err != nil {
		hlog.CtxErrorf(ctx, "save upload %s failed: %v", field, err)
		return nil, errno.ServiceErr
	}
	return &Upload{Path: dst}, nil
}
