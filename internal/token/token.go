package token

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash 计算链接 token 的查库摘要：sha256(token + ":" + pepper)
// pepper 是服务端秘密，泄露的摘要离开 pepper 无法离线爆破。
// 纯函数：同样输入永远得到同样摘要（链接生成端用同一算法写入 token_hash）。
func Hash(rawToken, pepper string) string {
	sum := sha256.Sum256([]byte(rawToken + ":" + pepper))
	return hex.EncodeToString(sum[:])
}

// Normalize 去掉 URL 路径里可能带入的空白
func Normalize(rawToken string) string {
	return strings.TrimSpace(rawToken)
}
