// Package router turns an utterance into exactly one intent, dispatches it
// through the action gateway and renders the user-facing reply.
//
// Rules are evaluated in a fixed precedence order held by a Registry; the
// first match wins and text that matches nothing becomes a chat request.
// Routing keeps no state between calls.
package router

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"jarvis/internal/gateway"
	"jarvis/internal/intent"
	"jarvis/internal/llm"
)

// Chatter answers free-form text. It returns llm.ErrNoModel when no model is loaded.
type Chatter interface {
	Reply(ctx context.Context, text string) (string, error)
}

// Outcome is the completed result of one routed utterance.
type Outcome struct {
	Rule    string
	Intent  intent.Intent
	Message string
	// OK is false when the gateway or the model reported a failure.
	OK  bool
	Err error
}

// Router dispatches utterances to the gateway.
type Router struct {
	rules *Registry
	gw    gateway.ActionGateway
	chat  Chatter
	now   func() time.Time
	log   *zap.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithRegistry replaces the default precedence list.
func WithRegistry(r *Registry) Option {
	return func(rt *Router) { rt.rules = r }
}

// WithClock sets the clock used to resolve relative dates.
func WithClock(now func() time.Time) Option {
	return func(rt *Router) { rt.now = now }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(rt *Router) { rt.log = log }
}

// New creates a Router. chat may be nil, in which case unmatched text is
// answered with NoModelMessage.
func New(gw gateway.ActionGateway, chat Chatter, opts ...Option) *Router {
	r := &Router{
		rules: DefaultRegistry(),
		gw:    gw,
		chat:  chat,
		now:   time.Now,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rules returns the precedence list.
func (r *Router) Rules() []Rule {
	return r.rules.All()
}

// Classify returns the matching rule name and intent for text.
// Unmatched text yields RuleChat and an intent.Chat.
func (r *Router) Classify(text string) (string, intent.Intent) {
	if name, in, ok := r.rules.First(text, r.now()); ok {
		return name, in
	}
	return RuleChat, intent.Chat{Text: text}
}

// Route returns the intent for text.
func (r *Router) Route(text string) intent.Intent {
	_, in := r.Classify(text)
	return in
}

// Handle routes text and dispatches the result.
func (r *Router) Handle(ctx context.Context, text string) Outcome {
	name, in := r.Classify(text)
	r.log.Debug("routed utterance", zap.String("rule", name), zap.String("kind", string(in.Kind())))
	out := r.Dispatch(ctx, in)
	out.Rule = name
	return out
}

// Dispatch performs in through the gateway and renders the reply.
// Gateway and model errors never escape; they are reported through Outcome.
func (r *Router) Dispatch(ctx context.Context, in intent.Intent) Outcome {
	if c, ok := in.(intent.Chat); ok {
		return r.reply(ctx, c)
	}

	var status string
	var err error
	switch v := in.(type) {
	case intent.ShowNote:
		var content string
		content, err = r.gw.ShowNote(ctx, v.Title)
		if err == nil {
			return Outcome{Intent: in, OK: true, Message: fmt.Sprintf("Here is your '%s':\n%s", v.Title, content)}
		}
	case intent.Screenshot:
		status, err = r.gw.TakeScreenshot(ctx)
	case intent.StartRecording:
		status, err = r.gw.StartRecording(ctx)
	case intent.StopRecording:
		status, err = r.gw.StopRecording(ctx)
	default:
		err = r.perform(ctx, in)
	}

	if err != nil {
		r.log.Warn("action failed", zap.String("kind", string(in.Kind())), zap.Error(err))
		return Outcome{Intent: in, Message: failureMessage(in, status, err), Err: err}
	}
	return Outcome{Intent: in, OK: true, Message: successMessage(in, status)}
}

// perform calls the gateway operation for intents whose reply needs no payload.
func (r *Router) perform(ctx context.Context, in intent.Intent) error {
	switch v := in.(type) {
	case intent.Reminder:
		return r.gw.AddReminder(ctx, v.Title, v.DueAt)
	case intent.Note:
		return r.gw.CreateNote(ctx, v.Title, v.Content)
	case intent.Alarm:
		return r.gw.SetAlarm(ctx, v.Hour, v.Minute, v.Label)
	case intent.Timer:
		return r.gw.SetTimer(ctx, v.Seconds, v.Label)
	case intent.ManageAlarms:
		return r.gw.ManageAlarms(ctx, v.Action)
	case intent.Toggle:
		return r.gw.SetToggle(ctx, v.Setting, v.Enable)
	case intent.Flashlight:
		return r.gw.ToggleFlashlight(ctx, v.Enable)
	case intent.Call:
		return r.gw.Call(ctx, v.Target)
	case intent.SMS:
		return r.gw.SendSMS(ctx, v.Target, v.Body)
	case intent.WhatsAppMessage:
		return r.gw.SendWhatsAppMessage(ctx, v.Target, v.Body)
	case intent.WhatsAppCall:
		if v.Video {
			return r.gw.WhatsAppVideoCall(ctx, v.Target)
		}
		return r.gw.WhatsAppAudioCall(ctx, v.Target)
	case intent.EmailDraft:
		return r.gw.GenerateEmail(ctx, v.Recipient, v.Subject, v.Context)
	case intent.YoutubeSearch:
		return r.gw.SearchYoutube(ctx, v.Query)
	case intent.PlayMusic:
		return r.gw.PlayMusic(ctx, v.Song, v.Artist)
	case intent.OpenApp:
		return r.gw.OpenApp(ctx, v.Name)
	}
	return fmt.Errorf("no gateway operation for %s", in.Kind())
}

func (r *Router) reply(ctx context.Context, c intent.Chat) Outcome {
	out := Outcome{Intent: c}
	if r.chat == nil {
		out.Err = llm.ErrNoModel
		out.Message = NoModelMessage
		return out
	}

	text, err := r.chat.Reply(ctx, c.Text)
	switch {
	case errors.Is(err, llm.ErrNoModel):
		out.Err = err
		out.Message = NoModelMessage
	case err != nil:
		r.log.Warn("chat failed", zap.Error(err))
		out.Err = err
		out.Message = ChatErrorMessage
	default:
		out.OK = true
		out.Message = text
	}
	return out
}
