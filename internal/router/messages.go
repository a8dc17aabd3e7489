package router

import (
	"errors"
	"fmt"
	"strings"

	"jarvis/internal/gateway"
	"jarvis/internal/intent"
	"jarvis/internal/llm"
)

// Fixed replies that do not depend on an intent's fields.
const (
	NoModelMessage   = "Please load a model first."
	ChatErrorMessage = "Sorry, I ran into a problem while thinking about that. Please try again."
)

var toggleNames = map[intent.ToggleKind]string{
	intent.ToggleWifi:       "Wi-Fi",
	intent.ToggleBluetooth:  "Bluetooth",
	intent.ToggleAirplane:   "airplane mode",
	intent.ToggleDND:        "Do Not Disturb",
	intent.ToggleMobileData: "mobile data",
}

func onOff(enable bool) string {
	if enable {
		return "on"
	}
	return "off"
}

// successMessage renders the confirmation shown after a gateway call succeeded.
// status carries the gateway's own message for screenshot and recording.
func successMessage(in intent.Intent, status string) string {
	switch v := in.(type) {
	case intent.Reminder:
		return fmt.Sprintf("Okay, I saved a reminder for %s to remind you to %q", v.Description, v.Title)
	case intent.Note:
		return fmt.Sprintf("Did it for you! I've saved your '%s' list.", v.Title)
	case intent.OpenApp:
		return fmt.Sprintf("Opening %s...", v.Name)
	case intent.Flashlight:
		return fmt.Sprintf("Turning %s the flashlight.", onOff(v.Enable))
	case intent.Alarm:
		return fmt.Sprintf("Alarm set for %02d:%02d (%s).", v.Hour, v.Minute, v.Label)
	case intent.Timer:
		return fmt.Sprintf("%s set for %s.", v.Label, HumanDuration(v.Seconds))
	case intent.ManageAlarms:
		switch v.Action {
		case intent.AlarmDismiss:
			return "Alarm dismissed."
		case intent.AlarmSnooze:
			return "Alarm snoozed."
		}
		return "Here are your alarms."
	case intent.Toggle:
		return fmt.Sprintf("Turning %s %s.", onOff(v.Enable), toggleNames[v.Setting])
	case intent.Call:
		return fmt.Sprintf("Calling %s...", v.Target)
	case intent.SMS:
		return fmt.Sprintf("Sending a text to %s: %q", v.Target, v.Body)
	case intent.WhatsAppMessage:
		return fmt.Sprintf("Sending a WhatsApp message to %s: %q", v.Target, v.Body)
	case intent.WhatsAppCall:
		if v.Video {
			return fmt.Sprintf("Starting a WhatsApp video call with %s...", v.Target)
		}
		return fmt.Sprintf("Starting a WhatsApp call with %s...", v.Target)
	case intent.EmailDraft:
		return fmt.Sprintf("I've drafted an email to %s about %q. Opening your mail app...", v.Recipient, v.Subject)
	case intent.YoutubeSearch:
		return fmt.Sprintf("Searching YouTube for %q...", v.Query)
	case intent.PlayMusic:
		if v.Artist != "" {
			return fmt.Sprintf("Playing %s by %s.", v.Song, v.Artist)
		}
		return fmt.Sprintf("Playing %s.", v.Song)
	case intent.Screenshot:
		return orDefault(status, "Screenshot captured!")
	case intent.StartRecording:
		return orDefault(status, "Recording started!")
	case intent.StopRecording:
		return orDefault(status, "Recording saved!")
	}
	return "Done."
}

// failureMessage renders the reply for a gateway call that returned err.
func failureMessage(in intent.Intent, status string, err error) string {
	switch v := in.(type) {
	case intent.Reminder:
		return "Sorry, I couldn't add the reminder. Please check if a calendar is set up on your device."
	case intent.Note:
		return "Sorry, I couldn't save the note. Please ensure I have the right permissions."
	case intent.ShowNote:
		if errors.Is(err, gateway.ErrNotFound) {
			return fmt.Sprintf("I couldn't find a note with the title '%s'.", v.Title)
		}
		return fmt.Sprintf("Sorry, I couldn't open '%s' right now.", v.Title)
	case intent.OpenApp:
		return fmt.Sprintf("Sorry, I couldn't find the app '%s' on your device.", v.Name)
	case intent.Flashlight:
		return fmt.Sprintf("Sorry, I couldn't turn %s the flashlight.", onOff(v.Enable))
	case intent.Alarm:
		return "Sorry, I couldn't set the alarm."
	case intent.Timer:
		return "Sorry, I couldn't start the timer."
	case intent.ManageAlarms:
		return fmt.Sprintf("Sorry, I couldn't %s your alarms.", v.Action)
	case intent.Toggle:
		return fmt.Sprintf("Sorry, I couldn't turn %s %s.", onOff(v.Enable), toggleNames[v.Setting])
	case intent.Call:
		return fmt.Sprintf("Sorry, I couldn't call %s.", v.Target)
	case intent.SMS:
		return fmt.Sprintf("Sorry, I couldn't send the text to %s.", v.Target)
	case intent.WhatsAppMessage:
		return fmt.Sprintf("Sorry, I couldn't send the WhatsApp message to %s.", v.Target)
	case intent.WhatsAppCall:
		return fmt.Sprintf("Sorry, I couldn't start a WhatsApp call with %s.", v.Target)
	case intent.EmailDraft:
		if errors.Is(err, llm.ErrNoModel) {
			return "Sorry, I need a loaded model to draft emails. " + NoModelMessage
		}
		return fmt.Sprintf("Sorry, I couldn't draft the email to %s right now.", v.Recipient)
	case intent.YoutubeSearch:
		return "Sorry, I couldn't open YouTube."
	case intent.PlayMusic:
		return fmt.Sprintf("Sorry, I couldn't play %s.", v.Song)
	case intent.Screenshot:
		return orDefault(status, "Screenshot failed")
	case intent.StartRecording:
		return orDefault(status, "Failed to start recording")
	case intent.StopRecording:
		return orDefault(status, "Failed to stop recording")
	}
	return "Sorry, something went wrong."
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// HumanDuration spells out a second count: 5400 -> "1 hour 30 minutes".
func HumanDuration(seconds int) string {
	h, m, s := seconds/3600, seconds%3600/60, seconds%60
	var parts []string
	for _, p := range []struct {
		n    int
		unit string
	}{{h, "hour"}, {m, "minute"}, {s, "second"}} {
		switch {
		case p.n == 1:
			parts = append(parts, "1 "+p.unit)
		case p.n > 1:
			parts = append(parts, fmt.Sprintf("%d %ss", p.n, p.unit))
		}
	}
	if len(parts) == 0 {
		return "0 seconds"
	}
	return strings.Join(parts, " ")
}
