package service

import (
	"context"

	"github.com/Owenun/Windy/internal/dto"
)

// CommonContext 前台页面共享的侧边栏与导航
func (s *BlogService) CommonContext(ctx context.Context) (*dto.CommonContext, error) {
	sidebars, err := s.sidebars.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	navs, err := s.CachedNavs(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.CommonContext{
		SideBars: sidebars,
		Navs:     *navs,
	}, nil
}
