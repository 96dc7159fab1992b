package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting assembly of %d records":     "%d 件のレコードからアセンブリを開始します",
		"Collate stage completed: %d records": "コレートステージ完了: %d 件",
		"Assembly completed in %d ms":         "アセンブリが %d ms で完了しました",

		// Collate stage
		"Parsing %d records":                   "%d 件のレコードを解析中",
		"Records sorted: %d entries":           "レコードをソートしました: %d 件",
		"Duplicate index %d appears %d times":  "インデックス %d が %d 回重複しています",

		// Assemble stage
		"Frame size fixed at %dx%d":      "フレームサイズを %dx%d に固定しました",
		"Encoding %d frames at %.1f fps": "%d フレームを %.1f fps でエンコード中",
		"Encoding frame %d/%d":           "フレームエンコード中 %d/%d",
		"Video encoded: %d bytes":        "動画エンコード完了: %d バイト",

		// Extract stage
		"Opening source %s":         "ソース %s を開いています",
		"Extracted frame %d: %dx%d": "フレーム %d を抽出しました: %dx%d",
		"Frame saved as %s":         "フレームを %s として保存しました",

		// Errors
		"Failed to collate records: %s": "レコードのコレートに失敗しました: %s",
		"Failed to encode video: %s":    "動画のエンコードに失敗しました: %s",
	})
}
