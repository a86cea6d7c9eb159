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

package integration

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/kbites/internal/bite"
	"github.com/ecodeclub/kbites/internal/bite/internal/errs"
	"github.com/ecodeclub/kbites/internal/bite/internal/web"
	"github.com/ecodeclub/kbites/internal/test"
	testioc "github.com/ecodeclub/kbites/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const uid = 1234

type HandlerTestSuite struct {
	suite.Suite
	server *egin.Component
	admin  *gin.Engine
	db     *egorm.Component
}

func (s *HandlerTestSuite) SetupSuite() {
	t := s.T()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	s.db = testioc.InitDB()
	module, err := bite.InitModule(s.db, testioc.InitMQ(), testioc.InitCache(), node, bite.Config{})
	require.NoError(t, err)

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	module.Hdl.PublicRoutes(server.Engine)
	server.Use(sessionFromHeader)
	module.Hdl.PrivateRoutes(server.Engine)
	s.server = server

	admin := gin.New()
	admin.Use(sessionFromHeader)
	module.AdminHdl.PrivateRoutes(admin)
	s.admin = admin
}

// sessionFromHeader 测试里面用 uid 头模拟登录，没有这个头就是未登录
func sessionFromHeader(ctx *gin.Context) {
	val := ctx.GetHeader("uid")
	if val == "" {
		return
	}
	id, _ := strconv.ParseInt(val, 10, 64)
	ctx.Set("_session", session.NewMemorySession(session.Claims{Uid: id}))
}

func (s *HandlerTestSuite) TearDownTest() {
	for _, table := range []string{
		"bite_posts", "bite_comments", "bite_likes", "bite_post_counters",
		"bite_counter_marks", "bite_collections", "bite_collection_posts",
		"bite_hidden_posts", "bite_mutes", "bite_reports",
	} {
		require.NoError(s.T(), s.db.Exec("DELETE FROM "+table).Error)
	}
}

func doPost[T any](t *testing.T, h http.Handler, path string, body any, uid int64) (int, test.Result[T]) {
	req, err := http.NewRequest(http.MethodPost, path, iox.NewJSONReader(body))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	if uid >= 0 {
		req.Header.Set("uid", strconv.FormatInt(uid, 10))
	}
	recorder := test.NewJSONResponseRecorder[T]()
	h.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		return recorder.Code, test.Result[T]{}
	}
	return recorder.Code, recorder.MustScan()
}

func (s *HandlerTestSuite) createPost(authorId int64) int64 {
	code, res := doPost[int64](s.T(), s.admin, "/bite/post/save", web.SavePostReq{
		AuthorId: authorId,
		Title:    "bite",
	}, uid)
	require.Equal(s.T(), http.StatusOK, code)
	require.True(s.T(), res.Data > 0)
	return res.Data
}

func (s *HandlerTestSuite) TestLikeToggle() {
	postId := s.createPost(1)
	testCases := []struct {
		name     string
		uid      int64
		req      web.PostReq
		wantCode int
		wantResp test.Result[web.LikeResp]
	}{
		{
			name:     "点赞",
			uid:      uid,
			req:      web.PostReq{PostId: postId},
			wantCode: http.StatusOK,
			wantResp: test.Result[web.LikeResp]{Data: web.LikeResp{Liked: true, LikeCount: 1}},
		},
		{
			name:     "其他人点赞",
			uid:      uid + 1,
			req:      web.PostReq{PostId: postId},
			wantCode: http.StatusOK,
			wantResp: test.Result[web.LikeResp]{Data: web.LikeResp{Liked: true, LikeCount: 2}},
		},
		{
			name:     "取消点赞",
			uid:      uid,
			req:      web.PostReq{PostId: postId},
			wantCode: http.StatusOK,
			wantResp: test.Result[web.LikeResp]{Data: web.LikeResp{Liked: false, LikeCount: 1}},
		},
		{
			name:     "视频不存在",
			uid:      uid,
			req:      web.PostReq{PostId: postId + 1000},
			wantCode: http.StatusOK,
			wantResp: test.Result[web.LikeResp]{Code: errs.PostNotFound.Code, Msg: errs.PostNotFound.Msg},
		},
		{
			name:     "未登录",
			uid:      -1,
			req:      web.PostReq{PostId: postId},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "非法的用户",
			uid:      0,
			req:      web.PostReq{PostId: postId},
			wantCode: http.StatusUnauthorized,
		},
	}
	for _, tc := range testCases {
		s.T().Run(tc.name, func(t *testing.T) {
			code, res := doPost[web.LikeResp](t, s.server, "/bite/like/toggle", tc.req, tc.uid)
			require.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantResp, res)
		})
	}
}

func (s *HandlerTestSuite) TestModeration() {
	t := s.T()
	p1 := s.createPost(1)
	s.createPost(2)
	p3 := s.createPost(3)

	code, feed := doPost[web.FeedResp](t, s.server, "/bite/feed", web.FeedReq{}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, feed.Data.Posts, 3)

	code, hide := doPost[web.HideResp](t, s.server, "/bite/hide", web.PostReq{PostId: p1}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, hide.Data.Hidden)

	code, mute := doPost[web.MuteResp](t, s.server, "/bite/mute/toggle", web.MuteReq{AuthorId: 2}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, mute.Data.Muted)
	code, mute = doPost[web.MuteResp](t, s.server, "/bite/mute/toggle", web.MuteReq{AuthorId: 99}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, errs.AuthorNotFound.Code, mute.Code)
	code, mutes := doPost[web.MuteListResp](t, s.server, "/bite/mute/list", nil, uid)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []int64{2}, mutes.Data.AuthorIds)

	code, feed = doPost[web.FeedResp](t, s.server, "/bite/feed", web.FeedReq{}, uid)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, feed.Data.Posts, 1)
	assert.Equal(t, p3, feed.Data.Posts[0].Id)

	code, report := doPost[web.ReportResp](t, s.server, "/bite/report",
		web.ReportReq{PostId: p3, Reasons: []string{"spam"}}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, web.ReportResp{Reported: true, Hidden: true}, report.Data)
	code, feed = doPost[web.FeedResp](t, s.server, "/bite/feed", web.FeedReq{}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, feed.Data.Posts, 0)
	// 别人的 feed 不受影响
	code, feed = doPost[web.FeedResp](t, s.server, "/bite/feed", web.FeedReq{}, uid+1)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, feed.Data.Posts, 3)

	code, reports := doPost[web.ReportListResp](t, s.admin, "/bite/report/list", web.PostReq{PostId: p3}, uid)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, reports.Data.Reports, 1)
	assert.Equal(t, []string{"spam"}, reports.Data.Reports[0].Reasons)
}

func (s *HandlerTestSuite) TestCollection() {
	t := s.T()
	postId := s.createPost(1)

	code, save := doPost[web.SaveResp](t, s.server, "/bite/save", web.SaveReq{PostId: postId}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, save.Data.Saved)
	cid := save.Data.CollectionId
	code, save = doPost[web.SaveResp](t, s.server, "/bite/save",
		web.SaveReq{PostId: postId, CollectionName: "Go"}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.NotEqual(t, cid, save.Data.CollectionId)
	code, save = doPost[web.SaveResp](t, s.server, "/bite/save",
		web.SaveReq{PostId: postId + 1000}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, errs.PostNotFound.Code, save.Code)

	code, cs := doPost[web.CollectionListResp](t, s.server, "/bite/collection/list", nil, uid)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []web.Collection{
		{Id: cid, Name: "Posts/Videos", IsDefault: true},
		{Id: save.Data.CollectionId, Name: "Go"},
	}, cs.Data.Collections)

	code, posts := doPost[web.CollectionPostsResp](t, s.server, "/bite/collection/posts",
		web.CollectionPostsReq{CollectionId: cid}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []int64{postId}, posts.Data.PostIds)
	code, posts = doPost[web.CollectionPostsResp](t, s.server, "/bite/collection/posts",
		web.CollectionPostsReq{CollectionId: cid}, uid+1)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, errs.CollectionNotFound.Code, posts.Code)

	code, detail := doPost[web.Interactive](t, s.server, "/bite/detail", web.PostReq{PostId: postId}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, detail.Data.Saved)
	code, feed := doPost[web.FeedResp](t, s.server, "/bite/feed", web.FeedReq{}, uid)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, feed.Data.Posts, 1)
	assert.True(t, feed.Data.Posts[0].Saved)
	assert.False(t, feed.Data.Posts[0].Liked)
	code, feed = doPost[web.FeedResp](t, s.server, "/bite/feed", web.FeedReq{}, uid+1)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, feed.Data.Posts, 1)
	assert.False(t, feed.Data.Posts[0].Saved)

	code, save = doPost[web.SaveResp](t, s.server, "/bite/unsave", web.PostReq{PostId: postId}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, save.Data.Saved)
	code, detail = doPost[web.Interactive](t, s.server, "/bite/detail", web.PostReq{PostId: postId}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, detail.Data.Saved)
}

func (s *HandlerTestSuite) TestComment() {
	t := s.T()
	postId := s.createPost(1)

	code, comment := doPost[web.CommentResp](t, s.server, "/bite/comment",
		web.CommentReq{PostId: postId, Text: "hello"}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), comment.Data.CommentCount)
	code, comment = doPost[web.CommentResp](t, s.server, "/bite/comment",
		web.CommentReq{PostId: postId, Text: ""}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, errs.InvalidArgument.Code, comment.Code)

	code, comments := doPost[web.CommentListResp](t, s.server, "/bite/comment/list",
		web.CommentListReq{PostId: postId}, uid)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, comments.Data.Comments, 1)
	assert.Equal(t, "hello", comments.Data.Comments[0].Text)
	assert.Equal(t, int64(uid), comments.Data.Comments[0].AuthorId)

	// 人为制造漂移之后手动对账
	err := s.db.Exec("UPDATE bite_post_counters SET comment_cnt = 5 WHERE post_id = ?", postId).Error
	require.NoError(t, err)
	code, rec := doPost[web.ReconcileResp](t, s.admin, "/bite/counter/reconcile", web.PostReq{PostId: postId}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, web.ReconcileResp{CommentCount: 1}, rec.Data)
	code, detail := doPost[web.Interactive](t, s.server, "/bite/detail", web.PostReq{PostId: postId}, uid)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), detail.Data.CommentCount)
}

func TestHandler(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
