package service

import (
	"fmt"
	"html"
	"strings"

	"trainerbot/internal/adapters/telegram"
	"trainerbot/internal/core/answer"
	grading "trainerbot/internal/services/grading/domain"
	mat "trainerbot/internal/services/materials/domain"
)

// Button labels, the reply keyboard ones double as the text the bot matches on
const (
	LabelOpenTrainer    = "🚀 Open trainer"
	LabelSubmitHomework = "📝 Submit homework"
	labelLaunch         = "🎯 Launch the trainer"
	labelBackToMenu     = "🔙 Main menu"
	labelOpenCourse     = "🎓 Open the SQL course"
	labelWriteAnswer    = "✍️ Write the answer"
)

// feedback is cut so the whole result stays under the 4096 character message limit
const maxFeedback = 3000

const (
	welcomeText = `🎯 <b>Welcome to the AI Trainer!</b>

An interactive course on working with AI tools for data analysis.

<b>🔥 What you can do:</b>
• Solve practical data analysis tasks
• Get homework checked automatically
• Receive personal AI feedback
• Track your progress

Pick an action from the menu below 👇`

	helpText = `📖 <b>AI Trainer help</b>

<b>Commands:</b>
/start - start working with the trainer
/help - show this help

<b>How it works:</b>
1. Open the trainer with the button
2. Pick a task
3. Study the materials and solve it
4. Send your solution for review

If something goes wrong, contact the administrator.`

	pendingText = "🔄 Checking your answer...\n\nThis may take a few seconds ⏳"

	launchText = "🎯 The AI Trainer is ready!\n\nTap the button below to start:"

	homeworkText = "📝 <b>Submit homework</b>\n\nTap the button below, write your answer and send it for review 👇"

	newTaskText = "📚 <b>Ready for the next task?</b>\n\nOpen the trainer and pick one 👇"

	hintText          = "Use the \"" + LabelOpenTrainer + "\" button or the /start and /help commands"
	unknownActionText = "Unknown action from the Mini App"
	notFoundText      = "Materials for this task were not found"
	emptyAnswerText   = "The answer cannot be empty!"
	failureText       = "Something went wrong while processing the request"
)

func msg(chatID int64, text string, markup any) telegram.SendMessage {
	return telegram.SendMessage{
		ChatID:             chatID,
		Text:               text,
		ParseMode:          telegram.ParseModeHTML,
		ReplyMarkup:        markup,
		LinkPreviewOptions: &telegram.LinkPreviewOptions{IsDisabled: true},
	}
}

func webApp(url string) *telegram.WebAppInfo { return &telegram.WebAppInfo{URL: url} }

func inline(rows ...[]telegram.InlineKeyboardButton) *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func row(b ...telegram.InlineKeyboardButton) []telegram.InlineKeyboardButton { return b }

func menuButton() telegram.InlineKeyboardButton {
	return telegram.InlineKeyboardButton{Text: labelBackToMenu, CallbackData: grading.ActionMainMenu}
}

// MainMenu is the persistent reply keyboard
func MainMenu(appURL string) *telegram.ReplyKeyboardMarkup {
	return &telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: LabelOpenTrainer, WebApp: webApp(appURL)}},
			{{Text: LabelSubmitHomework}},
		},
		ResizeKeyboard: true,
	}
}

// HomeworkURL opens the Mini App straight on the answer form
func HomeworkURL(appURL string) string {
	sep := "?"
	if strings.Contains(appURL, "?") {
		sep = "&"
	}
	return appURL + sep + "mode=homework"
}

func downloadMessage(chatID int64, m mat.Material) telegram.SendMessage {
	var b strings.Builder
	b.WriteString("📊 <b>The task materials are ready!</b>\n\n")
	if m.Description != "" {
		fmt.Fprintf(&b, "<b>Description:</b> %s\n\n", html.EscapeString(m.Description))
	}
	b.WriteString("<b>Instructions:</b>\n" +
		"1. Tap \"Download\" below\n" +
		"2. Open the file in Excel or Google Sheets\n" +
		"3. Study the data structure\n" +
		"4. Return to the trainer to solve the task")

	kb := inline(
		row(telegram.InlineKeyboardButton{Text: "📊 Download " + m.DownloadFilename, URL: m.DownloadURL}),
		row(menuButton()),
	)
	return msg(chatID, b.String(), kb)
}

func courseMessage(chatID int64, m mat.Material) telegram.SendMessage {
	text := `🎓 <b>The training course is ready!</b>

<b>The course covers:</b>
• SQL query basics
• Aggregate functions
• Cohort analysis in practice
• Using GPT to write SQL

Taking the course before the task is recommended.

Tap the button below to open it 👇`

	kb := inline(
		row(telegram.InlineKeyboardButton{Text: labelOpenCourse, URL: m.CourseURL}),
		row(menuButton()),
	)
	return msg(chatID, text, kb)
}

// ResultText formats a rendered verdict as Telegram HTML, model text is escaped
func ResultText(r grading.Rendered) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>%s</b>\n\n", r.Marker, html.EscapeString(r.Label))
	fmt.Fprintf(&b, "🎯 <b>Score: %d/100</b>\n\n", r.Score)
	b.WriteString("📝 <b>Feedback:</b>\n")
	b.WriteString(html.EscapeString(answer.Preview(r.Feedback, maxFeedback)))

	if len(r.Suggestions) > 0 {
		b.WriteString("\n\n💡 <b>Suggestions:</b>\n")
		for i, s := range r.Suggestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, html.EscapeString(s))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func resultMessage(chatID int64, r grading.Rendered) telegram.SendMessage {
	var rows [][]telegram.InlineKeyboardButton
	for _, a := range r.Actions {
		rows = append(rows, row(telegram.InlineKeyboardButton{Text: a.Label, CallbackData: a.ID}))
	}
	var markup any
	if len(rows) > 0 {
		markup = inline(rows...)
	}
	return msg(chatID, ResultText(r), markup)
}
