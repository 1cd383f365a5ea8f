// Package service turns Telegram updates into bot actions and grading submissions
package service

import (
	"context"
	stderrs "errors"
	"strings"

	"trainerbot/internal/adapters/telegram"
	"trainerbot/internal/platform/logger"
	dom "trainerbot/internal/services/bot/domain"
	grading "trainerbot/internal/services/grading/domain"
	mat "trainerbot/internal/services/materials/domain"
)

// Options configures the Service
type Options struct {
	API       dom.API
	Grading   grading.ServicePort
	Materials mat.LookupPort

	// MiniAppURL is the web app opened by the trainer buttons
	MiniAppURL string

	// Sink overrides the chat sink, for tests
	Sink grading.Sink
}

// Service dispatches updates
type Service struct {
	api       dom.API
	grading   grading.ServicePort
	materials mat.LookupPort
	appURL    string
	sink      grading.Sink
}

// New constructs the Service
func New(o Options) *Service {
	if o.API == nil || o.Grading == nil || o.Materials == nil {
		panic("bot.Service requires API, Grading and Materials")
	}
	if o.Sink == nil {
		o.Sink = NewSink(o.API)
	}
	return &Service{
		api:       o.API,
		grading:   o.Grading,
		materials: o.Materials,
		appURL:    o.MiniAppURL,
		sink:      o.Sink,
	}
}

// Handle is a telegram.Handler
func (s *Service) Handle(ctx context.Context, u telegram.Update) {
	switch {
	case u.CallbackQuery != nil:
		s.onCallback(ctx, u.CallbackQuery)
	case u.Message == nil:
		return
	case u.Message.WebAppData != nil:
		s.onWebAppData(ctx, u.Message)
	default:
		s.onText(ctx, u.Message)
	}
}

func (s *Service) onText(ctx context.Context, m *telegram.Message) {
	chatID, userID := m.Chat.ID, sender(m)
	cmd, arg := splitCommand(m.Text)

	switch cmd {
	case "/start":
		ev := ParseStart(arg)
		ev.ChatID, ev.UserID = chatID, userID
		if ev.Action == dom.ActionOther {
			s.send(ctx, msg(chatID, welcomeText, MainMenu(s.appURL)))
			return
		}
		s.Dispatch(ctx, ev)
		return
	case "/help":
		s.send(ctx, msg(chatID, helpText, nil))
		return
	case "":
	default:
		s.send(ctx, msg(chatID, hintText, nil))
		return
	}

	switch strings.TrimSpace(m.Text) {
	case LabelSubmitHomework:
		kb := inline(row(telegram.InlineKeyboardButton{Text: labelWriteAnswer, WebApp: webApp(HomeworkURL(s.appURL))}))
		s.send(ctx, msg(chatID, homeworkText, kb))
	case LabelOpenTrainer:
		kb := inline(row(telegram.InlineKeyboardButton{Text: labelLaunch, WebApp: webApp(s.appURL)}))
		s.send(ctx, msg(chatID, launchText, kb))
	default:
		s.send(ctx, msg(chatID, hintText, nil))
	}
}

func (s *Service) onWebAppData(ctx context.Context, m *telegram.Message) {
	ev, err := ParseWebAppData(m.WebAppData.Data)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("bot: web app data rejected")
		s.send(ctx, msg(m.Chat.ID, failureText, nil))
		return
	}
	ev.ChatID, ev.UserID = m.Chat.ID, sender(m)
	if ev.Action == dom.ActionOther {
		s.send(ctx, msg(m.Chat.ID, unknownActionText, nil))
		return
	}
	s.Dispatch(ctx, ev)
}

func (s *Service) onCallback(ctx context.Context, q *telegram.CallbackQuery) {
	// the spinner stops even when the action below fails
	if err := s.api.AnswerCallbackQuery(ctx, q.ID, ""); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("bot: answer callback failed")
	}

	chatID := q.From.ID
	if q.Message != nil {
		chatID = q.Message.Chat.ID
	}

	switch q.Data {
	case grading.ActionMainMenu:
		s.send(ctx, msg(chatID, welcomeText, MainMenu(s.appURL)))
	case grading.ActionNewTask:
		kb := inline(row(telegram.InlineKeyboardButton{Text: LabelOpenTrainer, WebApp: webApp(s.appURL)}))
		if q.Message == nil {
			s.send(ctx, msg(chatID, newTaskText, kb))
			return
		}
		err := s.api.EditMessageText(ctx, telegram.EditMessageText{
			ChatID:      chatID,
			MessageID:   q.Message.MessageID,
			Text:        newTaskText,
			ParseMode:   telegram.ParseModeHTML,
			ReplyMarkup: kb,
		})
		if err != nil {
			logger.C(ctx).Warn().Err(err).Msg("bot: edit message failed")
			s.send(ctx, msg(chatID, newTaskText, kb))
		}
	default:
		logger.C(ctx).Debug().Str("data", q.Data).Msg("bot: unknown callback")
	}
}

// Dispatch performs one chat event, user facing failures are replied to in chat
// Signed submissions never come through here, the web app API verifies them before grading
func (s *Service) Dispatch(ctx context.Context, ev dom.Event) {
	switch ev.Action {
	case dom.ActionOpenDownload:
		if m, ok := s.material(ctx, ev); ok {
			s.send(ctx, downloadMessage(ev.ChatID, m))
		}
	case dom.ActionOpenCourse:
		if m, ok := s.material(ctx, ev); ok {
			s.send(ctx, courseMessage(ev.ChatID, m))
		}
	case dom.ActionSubmitHomework:
		s.submit(ctx, ev)
	default:
		s.send(ctx, msg(ev.ChatID, unknownActionText, nil))
	}
}

func (s *Service) material(ctx context.Context, ev dom.Event) (mat.Material, bool) {
	var (
		m   mat.Material
		err error
	)
	if ev.TaskID == "" {
		m, err = s.materials.Default(ctx)
	} else {
		m, err = s.materials.Lookup(ctx, ev.TaskID)
	}
	if err != nil {
		logger.C(ctx).Info().Err(err).Str("task_id", ev.TaskID).Msg("bot: material lookup failed")
		s.send(ctx, msg(ev.ChatID, notFoundText, nil))
		return mat.Material{}, false
	}
	return m, true
}

func (s *Service) submit(ctx context.Context, ev dom.Event) {
	taskID := ev.TaskID
	if taskID == "" {
		if m, err := s.materials.Default(ctx); err == nil {
			taskID = m.TaskID
		}
	}
	sub := grading.NewSubmission(taskID, ev.AnswerText, ev.Channel, ev.ChatID, ev.UserID)

	// delivery outlives the update that triggered it, shutdown drains it through grading Wait
	_, err := s.grading.Go(context.WithoutCancel(ctx), sub, s.sink)
	switch {
	case stderrs.Is(err, grading.ErrEmptyAnswer):
		s.send(ctx, msg(ev.ChatID, emptyAnswerText, nil))
	case err != nil:
		logger.C(ctx).Error().Err(err).Str("submission_id", sub.ID).Msg("bot: submission not started")
	}
}

func (s *Service) send(ctx context.Context, m telegram.SendMessage) {
	if _, err := s.api.SendMessage(ctx, m); err != nil {
		logger.C(ctx).Warn().Err(err).Int64("chat_id", m.ChatID).Msg("bot: send failed")
	}
}

func sender(m *telegram.Message) int64 {
	if m.From != nil {
		return m.From.ID
	}
	return m.Chat.ID
}
