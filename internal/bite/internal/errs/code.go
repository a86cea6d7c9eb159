package errs

var (
	SystemError        = ErrorCode{Code: 516001, Msg: "系统错误"}
	PostNotFound       = ErrorCode{Code: 416002, Msg: "视频不存在"}
	CollectionNotFound = ErrorCode{Code: 416003, Msg: "收藏夹不存在"}
	AuthorNotFound     = ErrorCode{Code: 416004, Msg: "作者不存在"}
	InvalidArgument    = ErrorCode{Code: 416005, Msg: "参数错误"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
