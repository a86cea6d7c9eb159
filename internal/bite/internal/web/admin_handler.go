// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package web

import (
	"context"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/ecodeclub/kbites/internal/bite/internal/service"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// PostCreator 默认的视频存储支持直接录入视频元数据
type PostCreator interface {
	Create(ctx context.Context, post domain.Post) (int64, error)
}

// AdminHandler 管理后台，只有创作者权限才能访问
type AdminHandler struct {
	posts         PostCreator
	engagementSvc service.EngagementService
	counterSvc    service.CounterMaintainer
}

func NewAdminHandler(posts PostCreator,
	engagementSvc service.EngagementService,
	counterSvc service.CounterMaintainer) *AdminHandler {
	return &AdminHandler{
		posts:         posts,
		engagementSvc: engagementSvc,
		counterSvc:    counterSvc,
	}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/bite")
	g.POST("/post/save", ginx.BS[SavePostReq](h.SavePost))
	g.POST("/report/list", ginx.B[PostReq](h.ReportList))
	g.POST("/counter/reconcile", ginx.B[PostReq](h.Reconcile))
}

func (h *AdminHandler) SavePost(ctx *ginx.Context, req SavePostReq, sess session.Session) (ginx.Result, error) {
	authorId := req.AuthorId
	if authorId <= 0 {
		authorId = sess.Claims().Uid
	}
	id, err := h.posts.Create(ctx.Request.Context(), domain.Post{
		AuthorId: authorId,
		Title:    req.Title,
		Ctime:    time.Now(),
	})
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: id}, nil
}

func (h *AdminHandler) ReportList(ctx *ginx.Context, req PostReq) (ginx.Result, error) {
	reports, err := h.engagementSvc.ListReports(ctx.Request.Context(), req.PostId)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ReportListResp{
			Reports: slice.Map(reports, func(idx int, src domain.Report) Report {
				return Report{
					Id:      src.Id,
					Uid:     src.Uid,
					Reasons: src.Reasons,
					Ctime:   src.Ctime.UnixMilli(),
				}
			}),
		},
	}, nil
}

// Reconcile 手动触发对账
func (h *AdminHandler) Reconcile(ctx *ginx.Context, req PostReq) (ginx.Result, error) {
	var (
		eg   errgroup.Group
		resp ReconcileResp
	)
	eg.Go(func() error {
		var err error
		resp.LikeCount, err = h.counterSvc.Reconcile(ctx.Request.Context(), req.PostId, domain.CounterFieldLike)
		return err
	})
	eg.Go(func() error {
		var err error
		resp.CommentCount, err = h.counterSvc.Reconcile(ctx.Request.Context(), req.PostId, domain.CounterFieldComment)
		return err
	})
	if err := eg.Wait(); err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: resp}, nil
}
