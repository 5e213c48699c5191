package minutes

import (
	"github.com/johnquangdev/minutes-dashboard/internal/domain/entities"
	"github.com/johnquangdev/minutes-dashboard/pkg/llm"
)

// minutesSchema is the explicit output contract given to the model. Its
// rendering goes into the system prompt verbatim and the same structure
// validates every response, so the two can never disagree.
var minutesSchema = llm.Object(
	llm.Required("summary", llm.String()),
	llm.Required("topics", llm.Array(llm.Object(
		llm.Required("title", llm.String()),
		llm.Required("startTime", llm.Number()),
		llm.Required("endTime", llm.Number()),
		llm.Required("summary", llm.String()),
		llm.Required("keyPoints", llm.Array(llm.String())),
		llm.Required("speakers", llm.Array(llm.Object(
			llm.Required("name", llm.String()),
		))),
	))),
	llm.Required("decisions", llm.Array(llm.Object(
		llm.Required("content", llm.String()),
		llm.Optional("context", llm.String()),
		llm.Optional("decidedAt", llm.String()),
	))),
	llm.Required("actionItems", llm.Array(llm.Object(
		llm.Required("content", llm.String()),
		llm.Optional("assignee", llm.Object(
			llm.Required("name", llm.String()),
		)),
		llm.Optional("dueDate", llm.String()),
		llm.Required("priority", llm.Enum("high", "medium", "low")),
	))),
	llm.Optional("attendees", llm.Array(llm.Object(
		llm.Required("name", llm.String()),
	))),
)

const systemPreambleJA = `あなたは会議の議事録を作成する専門家です。` +
	`以下のタイムスタンプ付き会議の書き起こしを読み、議事録を作成してください。` +
	`要約は簡潔かつ網羅的に、議論されたトピックは時間帯ごとに分け、` +
	`決定事項とアクションアイテムは発言内容から忠実に抽出してください。` +
	`タイムスタンプはミリ秒単位の数値で出力してください。` +
	`推測で情報を補わないでください。`

const systemPreambleEN = `You are an expert minute-taker. Read the following ` +
	`timestamped meeting transcript and produce meeting minutes. Keep the ` +
	`summary concise but complete, split the discussion into topics by time ` +
	`range, and extract decisions and action items faithfully from what was ` +
	`said. Output timestamps as numbers in milliseconds. Do not invent ` +
	`information that is not in the transcript.`

// systemPreamble selects the language-specific instruction block. Japanese is
// the default for unrecognized values.
func systemPreamble(language string) string {
	if language == entities.LanguageEnglish {
		return systemPreambleEN
	}
	return systemPreambleJA
}
