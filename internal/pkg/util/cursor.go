package util

import (
	"encoding/base64"

	"github.com/goccy/go-json"
)

// EncodeCursor 将排序值数组编码为 Base64 字符串，作为翻页游标返回给前端
func EncodeCursor(sortValues []interface{}) string {
	if len(sortValues) == 0 {
		return ""
	}
	b, _ := json.Marshal(sortValues)
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeCursor 将前端传来的 Base64 游标解码为排序值数组
func DecodeCursor(cursor string) ([]interface{}, error) {
	if cursor == "" {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil, err
	}
	var sortValues []interface{}
	err = json.Unmarshal(b, &sortValues)
	return sortValues, err
}
