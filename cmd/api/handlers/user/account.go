package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"xTube.com/cmd/api/handlers/pack"
	"xTube.com/cmd/user/service"
)

func userService(ctx context.Context) *service.UserService {
	deps := pack.Deps()
	return service.NewUserService(ctx, deps.Store, deps.Locker)
}

func CurrentUser(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	user, err := userService(ctx).GetUser(userID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, user, "Current user fetched successfully")
}

func ChangePassword(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	var req ChangePasswordParam
	if err = pack.Bind(c, &req); err != nil {
		pack.SendError(c, err)
		return
	}
	if err = userService(ctx).ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, nil, "Password changed successfully")
}

func UpdateAccount(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	var req UpdateAccountParam
	if err = pack.Bind(c, &req); err != nil {
		pack.SendError(c, err)
		return
	}
	user, err := userService(ctx).UpdateAccount(userID, service.AccountPatch{FullName: req.FullName, Email: req.Email})
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, user, "Account details updated successfully")
}

func UpdateAvatar(ctx context.Context, c *app.RequestContext) {
	replaceImage(ctx, c, "avatar", "Avatar updated successfully")
}

func UpdateCoverImage(ctx context.Context, c *app.RequestContext) {
	replaceImage(ctx, c, "coverImage", "Cover image updated successfully")
}

func replaceImage(ctx context.Context, c *app.RequestContext, field, message string) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	upload, err := pack.SaveUpload(ctx, c, field, true)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	defer upload.Cleanup()

	svc := userService(ctx)
	update := svc.UpdateAvatar
	if field != "avatar" {
		update = svc.UpdateCoverImage
	}
	user, err := update(userID, upload.Path)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, user, message)
}
