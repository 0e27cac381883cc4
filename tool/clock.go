package tool

import (
	"context"
	"fmt"
	"strconv"
	"time"

	ai "github.com/spetersoncode/scout"
)

// ClockToolName is the name the clock tool is bound under.
const ClockToolName = "current_time"

// Clock output formats.
const (
	ClockFormatRFC3339 = "rfc3339"
	ClockFormatUnix    = "unix"
	ClockFormatHuman   = "human"
)

// ClockToolOption configures the clock tool.
type ClockToolOption func(*clockToolConfig)

type clockToolConfig struct {
	now func() time.Time
}

// WithNow replaces the time source.
func WithNow(now func() time.Time) ClockToolOption {
	return func(c *clockToolConfig) {
		c.now = now
	}
}

type clockArgs struct {
	Format   string `json:"format,omitempty" desc:"Output format" enum:"rfc3339,unix,human"`
	Timezone string `json:"timezone,omitempty" desc:"IANA time zone name, e.g. Asia/Tokyo. Defaults to UTC"`
}

// NewClockTool creates a tool that reports the current date and time.
func NewClockTool(opts ...ClockToolOption) (ai.Tool, Handler) {
	cfg := &clockToolConfig{now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}

	t := ai.Tool{
		Name:        ClockToolName,
		Description: "Get the current date and time. Use this before answering anything that depends on today's date.",
		Parameters:  ai.SchemaFor[clockArgs](),
	}

	handler := func(ctx context.Context, call ai.ToolCall) (string, error) {
		var args clockArgs
		if err := decodeArgs(call, &args); err != nil {
			return "", err
		}

		loc := time.UTC
		if args.Timezone != "" {
			l, err := time.LoadLocation(args.Timezone)
			if err != nil {
				return "", fmt.Errorf("unknown timezone %q", args.Timezone)
			}
			loc = l
		}
		now := cfg.now().In(loc)

		switch args.Format {
		case "", ClockFormatRFC3339:
			return now.Format(time.RFC3339), nil
		case ClockFormatUnix:
			return strconv.FormatInt(now.Unix(), 10), nil
		case ClockFormatHuman:
			return now.Format("Monday, January 2, 2006 15:04 MST"), nil
		default:
			return "", fmt.Errorf("unsupported format %q", args.Format)
		}
	}

	return t, handler
}
