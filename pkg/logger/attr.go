package logger

import (
	"log/slog"
	"strconv"
)

func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func TenantID(id string) slog.Attr {
	return optionalString("tenant_id", id)
}

func UserID(id string) slog.Attr {
	return optionalString("user_id", id)
}

func RequestID(id string) slog.Attr {
	return optionalString("request_id", id)
}

// Host records the inbound hostname as seen by tenant resolution.
func Host(host string) slog.Attr {
	return optionalString("host", host)
}

func Subdomain(subdomain string) slog.Attr {
	return optionalString("subdomain", subdomain)
}

func Role(role string) slog.Attr {
	return optionalString("role", role)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

func optionalString(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}
