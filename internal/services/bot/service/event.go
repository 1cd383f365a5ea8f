package service

import (
	"encoding/json"
	"net/url"
	"strings"

	perr "trainerbot/internal/platform/errors"
	dom "trainerbot/internal/services/bot/domain"
	grading "trainerbot/internal/services/grading/domain"
)

// deep link payload prefixes accepted by /start
const (
	linkDownload = "download_table_"
	linkCourse   = "open_course_"
	linkHomework = "hw_"
)

// legacy aliases that mean "the default material"
var defaultAliases = map[string]bool{"cohort": true, "sql": true}

// ParseStart maps a /start deep link payload to an event
// An empty or unknown payload yields ActionOther, which the bot answers with the main menu
func ParseStart(payload string) dom.Event {
	ev := dom.Event{Channel: grading.ChannelDirect, RawPayload: payload, Action: dom.ActionOther}
	switch {
	case strings.HasPrefix(payload, linkDownload):
		ev.Action = dom.ActionOpenDownload
		ev.TaskID = taskRef(strings.TrimPrefix(payload, linkDownload))
	case strings.HasPrefix(payload, linkCourse):
		ev.Action = dom.ActionOpenCourse
		ev.TaskID = taskRef(strings.TrimPrefix(payload, linkCourse))
	case strings.HasPrefix(payload, linkHomework):
		// hw_<taskId>_<escaped answer>, the answer may itself contain underscores
		parts := strings.SplitN(payload, "_", 3)
		if len(parts) != 3 || parts[1] == "" {
			return ev
		}
		ev.Action = dom.ActionSubmitHomework
		ev.TaskID = parts[1]
		ev.AnswerText = unescape(parts[2])
	}
	return ev
}

func taskRef(s string) string {
	if defaultAliases[s] {
		return ""
	}
	return s
}

func unescape(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}

// webAppMessage is the JSON a keyboard Mini App sends with sendData
type webAppMessage struct {
	Action     string `json:"action"`
	TaskID     string `json:"taskId"`
	UserAnswer string `json:"userAnswer"`
}

// ParseWebAppData maps a web_app_data message to an event
// Undecodable data is an InvalidArgument error, an unknown action is ActionOther
func ParseWebAppData(data string) (dom.Event, error) {
	var m webAppMessage
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return dom.Event{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "web app data is not json")
	}
	ev := dom.Event{
		Channel:    grading.ChannelDirect,
		RawPayload: data,
		TaskID:     strings.TrimSpace(m.TaskID),
		AnswerText: m.UserAnswer,
	}
	switch m.Action {
	case "download_table":
		ev.Action = dom.ActionOpenDownload
	case "open_course":
		ev.Action = dom.ActionOpenCourse
	case "submit_homework":
		ev.Action = dom.ActionSubmitHomework
	default:
		ev.Action = dom.ActionOther
	}
	return ev, nil
}

// splitCommand splits "/start@bot payload" into "/start" and "payload"
func splitCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, arg, _ = strings.Cut(text, " ")
	if at := strings.IndexByte(cmd, '@'); at > 0 {
		cmd = cmd[:at]
	}
	return cmd, strings.TrimSpace(arg)
}
