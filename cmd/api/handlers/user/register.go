package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"xTube.com/cmd/api/handlers/pack"
	"xTube.com/cmd/user/service"
)

func Register(ctx context.Context, c *app.RequestContext) {
	var req RegisterParam
	if err := pack.Bind(c, &req); err != nil {
		pack.SendError(c, err)
		return
	}
	avatar, err := pack.SaveUpload(ctx, c, "avatar", false)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	defer avatar.Cleanup()
	cover, err := pack.SaveUpload(ctx, c, "coverImage", false)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	defer cover.Cleanup()

	deps := pack.Deps()
	user, err := service.NewUserService(ctx, deps.Store, deps.Locker).Register(&service.RegisterParam{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   req.Password,
		AvatarPath: avatar.PathOrEmpty(),
		CoverPath:  cover.PathOrEmpty(),
	})
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusCreated, user, "User registered successfully")
}
