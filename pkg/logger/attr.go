package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// NotificationID records the notification identifier under the key "notification_id".
func NotificationID(id string) slog.Attr {
	return slog.String("notification_id", id)
}

// Recipient records the delivery destination under the key "recipient".
func Recipient(r string) slog.Attr {
	return slog.String("recipient", r)
}

// Channel records the delivery channel under the key "channel".
func Channel(c string) slog.Attr {
	return slog.String("channel", c)
}

// Provider records the transport provider name under the key "provider".
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// Template records the template name under the key "template".
func Template(name string) slog.Attr {
	return slog.String("template", name)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
