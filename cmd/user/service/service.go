package service

import (
	"context"

	"xTube.com/pkg/oss"
	"xTube.com/pkg/security"
)

type UserService struct {
	ctx    context.Context
	store  oss.BlobStore
	locker security.Locker
}

// NewUserService locker 为 nil 时不加锁
func NewUserService(ctx context.Context, store oss.BlobStore, locker security.Locker) *UserService {
	if locker == nil {
		locker = security.NopLocker{}
	}
	return &UserService{ctx: ctx, store: store, locker: locker}
}
