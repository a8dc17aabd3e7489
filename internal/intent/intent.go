// Package intent defines the structured commands derived from free text.
package intent

import "time"

// Kind tags an Intent variant.
type Kind string

const (
	KindReminder        Kind = "reminder"
	KindNote            Kind = "note"
	KindShowNote        Kind = "show_note"
	KindAlarm           Kind = "alarm"
	KindTimer           Kind = "timer"
	KindManageAlarms    Kind = "manage_alarms"
	KindToggle          Kind = "toggle"
	KindFlashlight      Kind = "flashlight"
	KindCall            Kind = "call"
	KindSMS             Kind = "sms"
	KindWhatsAppMessage Kind = "whatsapp_message"
	KindWhatsAppCall    Kind = "whatsapp_call"
	KindEmailDraft      Kind = "email_draft"
	KindYoutubeSearch   Kind = "youtube_search"
	KindPlayMusic       Kind = "play_music"
	KindOpenApp         Kind = "open_app"
	KindScreenshot      Kind = "screenshot"
	KindStartRecording  Kind = "start_recording"
	KindStopRecording   Kind = "stop_recording"
	KindChat            Kind = "chat"
)

// Intent is the tagged variant produced for every routed utterance.
// The unexported marker keeps the set of variants closed to this package.
type Intent interface {
	Kind() Kind
	intent()
}

// Reminder is a calendar reminder at an absolute time.
type Reminder struct {
	Title string
	DueAt time.Time
	// Description is the matched date and time text, e.g. "tomorrow 5pm".
	Description string
}

// DueAtMillis returns the due time as Unix epoch milliseconds.
func (r Reminder) DueAtMillis() int64 { return r.DueAt.UnixMilli() }

// Note creates a note or list. Content holds one "- item" line per entry.
type Note struct {
	Title   string
	Content string
}

// ShowNote looks up a previously saved note by title.
type ShowNote struct {
	Title string
}

// Alarm sets a clock alarm in 24-hour form.
type Alarm struct {
	Hour   int
	Minute int
	Label  string
}

// Timer starts a countdown.
type Timer struct {
	Seconds int
	Label   string
}

// AlarmAction is what ManageAlarms does with existing alarms.
type AlarmAction string

const (
	AlarmShow    AlarmAction = "show"
	AlarmDismiss AlarmAction = "dismiss"
	AlarmSnooze  AlarmAction = "snooze"
)

// ManageAlarms shows, dismisses or snoozes alarms.
type ManageAlarms struct {
	Action AlarmAction
}

// ToggleKind names a connectivity or device setting.
type ToggleKind string

const (
	ToggleWifi       ToggleKind = "wifi"
	ToggleBluetooth  ToggleKind = "bluetooth"
	ToggleAirplane   ToggleKind = "airplane"
	ToggleDND        ToggleKind = "dnd"
	ToggleMobileData ToggleKind = "mobile_data"
)

// Toggle switches a setting on or off.
type Toggle struct {
	Setting ToggleKind
	Enable  bool
}

// Flashlight switches the torch on or off.
type Flashlight struct {
	Enable bool
}

// Call places a phone call.
type Call struct {
	Target string
}

// SMS sends a text message.
type SMS struct {
	Target string
	Body   string
}

// WhatsAppMessage sends a WhatsApp message.
type WhatsAppMessage struct {
	Target string
	Body   string
}

// WhatsAppCall starts a WhatsApp audio or video call.
type WhatsAppCall struct {
	Target string
	Video  bool
}

// EmailDraft asks for an email to be drafted and handed to a mail composer.
type EmailDraft struct {
	Recipient string
	Subject   string
	Context   string
}

// YoutubeSearch searches YouTube.
type YoutubeSearch struct {
	Query string
}

// PlayMusic plays a song. Artist is empty when not given.
type PlayMusic struct {
	Song   string
	Artist string
}

// OpenApp launches an application by name.
type OpenApp struct {
	Name string
}

// Screenshot captures the screen.
type Screenshot struct{}

// StartRecording starts a screen recording.
type StartRecording struct{}

// StopRecording stops the current screen recording.
type StopRecording struct{}

// Chat is the fallback: the text is forwarded to the language model.
type Chat struct {
	Text string
}

func (Reminder) Kind() Kind        { return KindReminder }
func (Note) Kind() Kind            { return KindNote }
func (ShowNote) Kind() Kind        { return KindShowNote }
func (Alarm) Kind() Kind           { return KindAlarm }
func (Timer) Kind() Kind           { return KindTimer }
func (ManageAlarms) Kind() Kind    { return KindManageAlarms }
func (Toggle) Kind() Kind          { return KindToggle }
func (Flashlight) Kind() Kind      { return KindFlashlight }
func (Call) Kind() Kind            { return KindCall }
func (SMS) Kind() Kind             { return KindSMS }
func (WhatsAppMessage) Kind() Kind { return KindWhatsAppMessage }
func (WhatsAppCall) Kind() Kind    { return KindWhatsAppCall }
func (EmailDraft) Kind() Kind      { return KindEmailDraft }
func (YoutubeSearch) Kind() Kind   { return KindYoutubeSearch }
func (PlayMusic) Kind() Kind       { return KindPlayMusic }
func (OpenApp) Kind() Kind         { return KindOpenApp }
func (Screenshot) Kind() Kind      { return KindScreenshot }
func (StartRecording) Kind() Kind  { return KindStartRecording }
func (StopRecording) Kind() Kind   { return KindStopRecording }
func (Chat) Kind() Kind            { return KindChat }

func (Reminder) intent()        {}
func (Note) intent()            {}
func (ShowNote) intent()        {}
func (Alarm) intent()           {}
func (Timer) intent()           {}
func (ManageAlarms) intent()    {}
func (Toggle) intent()          {}
func (Flashlight) intent()      {}
func (Call) intent()            {}
func (SMS) intent()             {}
func (WhatsAppMessage) intent() {}
func (WhatsAppCall) intent()    {}
func (EmailDraft) intent()      {}
func (YoutubeSearch) intent()   {}
func (PlayMusic) intent()       {}
func (OpenApp) intent()         {}
func (Screenshot) intent()      {}
func (StartRecording) intent()  {}
func (StopRecording) intent()   {}
func (Chat) intent()            {}
