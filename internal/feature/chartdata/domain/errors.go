// Package domain はchartdataフィーチャーのドメインエラーを定義します。
package domain

import (
	"fmt"
	"strings"
)

// FormatError は必須カラムが欠けているテーブルを表すエラーです。
// 欠けているカラムをすべて列挙し、部分的な取り込みは行いません。
type FormatError struct {
	MissingColumns []string
}

// Error はerrorインターフェースを実装します。
func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid table format - missing required columns: %s",
		strings.Join(e.MissingColumns, ", "))
}
