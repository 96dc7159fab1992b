// Package main provides localization for the framecollate CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Assemble ordered frame collections into videos.": "順序付きフレームコレクションから動画を組み立てます。",

		// Assemble command
		"Collate frame records and encode them into a video.": "フレームレコードをコレートして動画にエンコード",
		"Records manifest file (JSON lines), or - for stdin.": "レコードマニフェストファイル（JSON行形式、- で標準入力）",
		"Output video file path.":                             "出力動画ファイルパス",
		"YAML configuration file.":                            "YAML設定ファイル",

		// Encoding flags
		"Output frame rate (default: 30).":                          "出力フレームレート（デフォルト: 30）",
		"Codec code (mp4v, avc1, hev1, vp09, av01; default: x264).": "コーデックコード（mp4v, avc1, hev1, vp09, av01、デフォルト: x264）",
		"Video quality (CRF 0-63, lower is better).":                "動画品質（CRF 0-63、低いほど高品質）",
		"Target bitrate in kbps (0 = CRF mode).":                    "目標ビットレート（kbps、0 = CRFモード）",

		// Store flags
		"Frame store backend (fs or minio).":             "フレームストアのバックエンド（fs または minio）",
		"Base directory for the filesystem frame store.": "ファイルシステムフレームストアの基準ディレクトリ",

		// Tool path flags
		"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then system default).":    "ffmpeg実行ファイルのパス（FFMPEG_PATH環境変数、次にシステムデフォルトへフォールバック）",
		"Path to ffprobe executable (falls back to FFPROBE_PATH env, then system default).":  "ffprobe実行ファイルのパス（FFPROBE_PATH環境変数、次にシステムデフォルトへフォールバック）",

		// Debug flags
		"Enable debug output.":         "デバッグ出力を有効化",
		"Directory for debug output.":  "デバッグ出力のディレクトリ",

		// Summary flags
		"Output execution summary to file (Markdown format).": "実行サマリーをファイルに出力（Markdown形式）",

		// Logging flags
		"Log level (debug, info, warn, error).": "ログレベル（debug, info, warn, error）",
		"Suppress all log output.":              "全てのログ出力を抑制",

		// Extract command
		"Extract a single frame from a video into the frame store.": "動画から1フレームを抽出してフレームストアに保存",
		"Video file path.":        "動画ファイルパス",
		"Frame number (1-based).": "フレーム番号（1始まり）",

		// Probe command
		"Print container-declared metadata for a video.": "動画のコンテナ宣言メタデータを表示",
		"Output as JSON.":                                "JSON形式で出力",

		// Version command
		"Show version information.": "バージョン情報を表示",
		"framecollate version %s":   "framecollate バージョン %s",

		// Runtime messages
		"Assembling %d records into %s...": "%d 件のレコードを %s に組み立て中...",
		"Extracting frame %d of %s...":     "フレーム %d を %s から抽出中...",
		"Interrupted, shutting down...":    "中断されました。シャットダウン中...",
		"Output saved to %s":               "出力を %s に保存しました",
		"Summary saved to %s":              "サマリーを %s に保存しました",
		"Failed to write summary: %s":      "サマリーの書き込みに失敗しました: %s",

		// Probe output
		"Codec: %s":            "コーデック: %s",
		"Frames: %d":           "フレーム数: %d",
		"Duration: %d ms":      "再生時間: %d ms",
		"Frame rate: %.2f fps": "フレームレート: %.2f fps",

		// Summary content
		"Assembly Summary":  "アセンブリサマリー",
		"Generated":         "生成日時",
		"Input":             "入力",
		"Records":           "レコード数",
		"Duplicate indexes": "重複インデックス",
		"Settings":          "設定",
		"Codec":             "コーデック",
		"Quality":           "品質",
		"Bitrate":           "ビットレート",
		"Frame rate":        "フレームレート",
		"Video":             "動画",
		"Output":            "出力先",
		"Frames":            "フレーム数",
		"Duration":          "再生時間",
		"Size":              "ファイルサイズ",
		"Dimensions":        "サイズ",
		"Timing":            "タイミング",
		"Total":             "合計時間",
	})
}
