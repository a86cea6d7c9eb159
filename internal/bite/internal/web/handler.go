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
	"errors"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/ecodeclub/kbites/internal/bite/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	feedSvc       service.FeedService
	engagementSvc service.EngagementService
	collectionSvc service.CollectionService
}

func NewHandler(feedSvc service.FeedService,
	engagementSvc service.EngagementService,
	collectionSvc service.CollectionService) *Handler {
	return &Handler{
		feedSvc:       feedSvc,
		engagementSvc: engagementSvc,
		collectionSvc: collectionSvc,
	}
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

// PrivateRoutes 都需要登录，统一用 POST
func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/bite")
	g.POST("/feed", ginx.BS[FeedReq](h.Feed))
	g.POST("/detail", ginx.BS[PostReq](h.Detail))

	g.POST("/like/toggle", ginx.BS[PostReq](h.ToggleLike))
	g.POST("/mute/toggle", ginx.BS[MuteReq](h.ToggleMute))
	g.POST("/mute/list", ginx.S(h.MuteList))
	g.POST("/hide", ginx.BS[PostReq](h.Hide))
	g.POST("/report", ginx.BS[ReportReq](h.Report))

	g.POST("/save", ginx.BS[SaveReq](h.Save))
	g.POST("/unsave", ginx.BS[PostReq](h.Unsave))
	g.POST("/collection/list", ginx.S(h.CollectionList))
	g.POST("/collection/posts", ginx.BS[CollectionPostsReq](h.CollectionPosts))

	g.POST("/comment", ginx.BS[CommentReq](h.Comment))
	g.POST("/comment/list", ginx.BS[CommentListReq](h.CommentList))
}

func (h *Handler) Feed(ctx *ginx.Context, req FeedReq, sess session.Session) (ginx.Result, error) {
	posts, err := h.feedSvc.Feed(ctx.Request.Context(), sess.Claims().Uid, req.toDomain())
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{
		Data: FeedResp{
			Posts: slice.Map(posts, func(idx int, src domain.Post) Post {
				return newPost(src)
			}),
		},
	}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req PostReq, sess session.Session) (ginx.Result, error) {
	intr, err := h.engagementSvc.Detail(ctx.Request.Context(), sess.Claims().Uid, req.PostId)
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{
		Data: Interactive{
			PostId:       intr.PostId,
			LikeCount:    intr.LikeCnt,
			CommentCount: intr.CommentCnt,
			ShareCount:   intr.ShareCnt,
			Liked:        intr.Liked,
			Saved:        intr.Saved,
		},
	}, nil
}

func (h *Handler) ToggleLike(ctx *ginx.Context, req PostReq, sess session.Session) (ginx.Result, error) {
	res, err := h.engagementSvc.ToggleLike(ctx.Request.Context(), sess.Claims().Uid, req.PostId)
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{
		Data: LikeResp{
			Liked:     res.Liked,
			LikeCount: res.LikeCnt,
		},
	}, nil
}

func (h *Handler) ToggleMute(ctx *ginx.Context, req MuteReq, sess session.Session) (ginx.Result, error) {
	muted, err := h.engagementSvc.ToggleMute(ctx.Request.Context(), sess.Claims().Uid, req.AuthorId)
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{Data: MuteResp{Muted: muted}}, nil
}

func (h *Handler) MuteList(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	ids, err := h.engagementSvc.MutedAuthors(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return h.errResult(err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ginx.Result{Data: MuteListResp{AuthorIds: ids}}, nil
}

func (h *Handler) Hide(ctx *ginx.Context, req PostReq, sess session.Session) (ginx.Result, error) {
	err := h.engagementSvc.Hide(ctx.Request.Context(), sess.Claims().Uid, req.PostId)
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{Data: HideResp{Hidden: true}}, nil
}

func (h *Handler) Report(ctx *ginx.Context, req ReportReq, sess session.Session) (ginx.Result, error) {
	err := h.engagementSvc.Report(ctx.Request.Context(), domain.Report{
		Uid:     sess.Claims().Uid,
		PostId:  req.PostId,
		Reasons: req.Reasons,
	})
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{Data: ReportResp{Reported: true, Hidden: true}}, nil
}

func (h *Handler) Save(ctx *ginx.Context, req SaveReq, sess session.Session) (ginx.Result, error) {
	cid, err := h.collectionSvc.SaveToCollection(ctx.Request.Context(), sess.Claims().Uid, req.PostId, req.CollectionName)
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{Data: SaveResp{Saved: true, CollectionId: cid}}, nil
}

func (h *Handler) Unsave(ctx *ginx.Context, req PostReq, sess session.Session) (ginx.Result, error) {
	err := h.collectionSvc.RemoveFromAllCollections(ctx.Request.Context(), sess.Claims().Uid, req.PostId)
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{Data: SaveResp{Saved: false}}, nil
}

func (h *Handler) CollectionList(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	cs, err := h.collectionSvc.List(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{
		Data: CollectionListResp{
			Collections: slice.Map(cs, func(idx int, src domain.Collection) Collection {
				return Collection{
					Id:        src.Id,
					Name:      src.Name,
					IsDefault: src.IsDefault(),
				}
			}),
		},
	}, nil
}

func (h *Handler) CollectionPosts(ctx *ginx.Context, req CollectionPostsReq, sess session.Session) (ginx.Result, error) {
	ids, err := h.collectionSvc.ListPosts(ctx.Request.Context(), sess.Claims().Uid,
		req.CollectionId, max(req.Offset, 0), pageSize(req.Limit))
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{Data: CollectionPostsResp{PostIds: ids}}, nil
}

func (h *Handler) Comment(ctx *ginx.Context, req CommentReq, sess session.Session) (ginx.Result, error) {
	id, cnt, err := h.engagementSvc.Comment(ctx.Request.Context(), domain.Comment{
		PostId:   req.PostId,
		AuthorId: sess.Claims().Uid,
		Text:     req.Text,
	})
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{Data: CommentResp{CommentId: id, CommentCount: cnt}}, nil
}

func (h *Handler) CommentList(ctx *ginx.Context, req CommentListReq, sess session.Session) (ginx.Result, error) {
	comments, err := h.engagementSvc.ListComments(ctx.Request.Context(), req.PostId, max(req.Offset, 0), pageSize(req.Limit))
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{
		Data: CommentListResp{
			Comments: slice.Map(comments, func(idx int, src domain.Comment) Comment {
				return Comment{
					Id:       src.Id,
					AuthorId: src.AuthorId,
					Text:     src.Text,
					Ctime:    src.Ctime.UnixMilli(),
				}
			}),
		},
	}, nil
}

// errResult 业务错误返回错误码，其余的当作系统错误
func (h *Handler) errResult(err error) (ginx.Result, error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return ginx.Result{}, ginx.ErrUnauthorized
	case errors.Is(err, service.ErrPostNotFound):
		return postNotFoundResult, nil
	case errors.Is(err, service.ErrCollectionNotFound):
		return collectionNotFoundResult, nil
	case errors.Is(err, service.ErrAuthorNotFound):
		return authorNotFoundResult, nil
	case errors.Is(err, service.ErrInvalidCollectionName),
		errors.Is(err, service.ErrInvalidComment):
		return invalidArgumentResult, nil
	default:
		return systemErrorResult, err
	}
}

func pageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	return min(limit, maxPageSize)
}
