package consts

const (
	// PostCacheKey 已发布文章详情缓存
	PostCacheKey = "post:cache:"
	// TokenDenyKey 已注销 Token 签名黑名单
	TokenDenyKey = "token:deny:"
)
