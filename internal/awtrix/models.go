package awtrix

// Optional fields are pointers tagged omitempty throughout this file. The
// firmware treats an absent key differently from null or false, so an unset
// field must never reach the wire.

// Ptr returns a pointer to v, for filling optional fields in literals
func Ptr[T any](v T) *T {
	return &v
}

// EffectSettings tunes a background effect
type EffectSettings struct {
	Speed   *uint32 `json:"speed,omitempty"`
	Palette *string `json:"palette,omitempty"`
	Blend   *bool   `json:"blend,omitempty"`
}

// Message holds the fields shared by notifications and custom apps
type Message struct {
	Text     *string `json:"text,omitempty"`
	Icon     *uint32 `json:"icon,omitempty"`
	Color    *Color  `json:"color,omitempty"`
	Duration *uint32 `json:"duration,omitempty"` // seconds

	Sound     *string `json:"sound,omitempty"`
	RTTTL     *string `json:"rtttl,omitempty"`
	LoopSound *bool   `json:"loopSound,omitempty"`

	Progress           *uint8 `json:"progress,omitempty"` // 0-100
	ProgressColor      *Color `json:"progressC,omitempty"`
	ProgressBackground *Color `json:"progressBC,omitempty"`

	Rainbow  *bool `json:"rainbow,omitempty"`
	Hold     *bool `json:"hold,omitempty"`
	Wakeup   *bool `json:"wakeup,omitempty"`
	Stack    *bool `json:"stack,omitempty"`
	NoScroll *bool `json:"noScroll,omitempty"`

	Effect         *string         `json:"effect,omitempty"`
	EffectSettings *EffectSettings `json:"effectSettings,omitempty"`
}

// Notification is a one-shot message shown over the app loop.
// POST /api/notify
type Notification struct {
	Message
	ScrollSpeed *uint32 `json:"scrollSpeed,omitempty"` // percent
}

// CustomApp is a named, persistent entry in the app loop.
// POST /api/custom?name=<name>
type CustomApp struct {
	Message
	Lifetime *uint32 `json:"lifetime,omitempty"` // seconds before the device drops the app
	Save     *bool   `json:"save,omitempty"`     // persist across reboots
	Pos      *uint32 `json:"pos,omitempty"`      // position in the loop
}

// TimeAppSettings configures the built-in clock app
type TimeAppSettings struct {
	Format         *uint8 `json:"format,omitempty"` // 0-5
	ShowWeekday    *bool  `json:"showWeekday,omitempty"`
	CalHeaderColor *Color `json:"calHeaderColor,omitempty"`
	CalBodyColor   *Color `json:"calBodyColor,omitempty"`
	CalTextColor   *Color `json:"calTextColor,omitempty"`
}

// DateAppSettings configures the built-in date app
type DateAppSettings struct {
	Enabled *bool   `json:"enabled,omitempty"`
	Format  *string `json:"format,omitempty"`
}

// Settings is the device configuration exchanged with /api/settings.
// Every field is independently optional.
type Settings struct {
	Brightness     *uint8           `json:"brightness,omitempty"`
	AutoBrightness *bool            `json:"autoBrightness,omitempty"`
	AutoTransition *bool            `json:"autoTransition,omitempty"`
	AppTime        *uint32          `json:"appTime,omitempty"` // seconds per app
	Transition     *string          `json:"transition,omitempty"`
	TransitionTime *uint32          `json:"transitionTime,omitempty"` // milliseconds
	TextColor      *Color           `json:"textColor,omitempty"`
	TimeApp        *TimeAppSettings `json:"timeApp,omitempty"`
	DateApp        *DateAppSettings `json:"dateApp,omitempty"`
	TempUnit       *string          `json:"tempUnit,omitempty"`
	ScrollSpeed    *uint32          `json:"scrollSpeed,omitempty"` // percent
}

// Clone returns a deep copy, so the result shares no pointers with s
func (s Settings) Clone() Settings {
	out := Settings{
		Brightness:     clonePtr(s.Brightness),
		AutoBrightness: clonePtr(s.AutoBrightness),
		AutoTransition: clonePtr(s.AutoTransition),
		AppTime:        clonePtr(s.AppTime),
		Transition:     clonePtr(s.Transition),
		TransitionTime: clonePtr(s.TransitionTime),
		TextColor:      clonePtr(s.TextColor),
		TempUnit:       clonePtr(s.TempUnit),
		ScrollSpeed:    clonePtr(s.ScrollSpeed),
	}
	if s.TimeApp != nil {
		out.TimeApp = &TimeAppSettings{
			Format:         clonePtr(s.TimeApp.Format),
			ShowWeekday:    clonePtr(s.TimeApp.ShowWeekday),
			CalHeaderColor: clonePtr(s.TimeApp.CalHeaderColor),
			CalBodyColor:   clonePtr(s.TimeApp.CalBodyColor),
			CalTextColor:   clonePtr(s.TimeApp.CalTextColor),
		}
	}
	if s.DateApp != nil {
		out.DateApp = &DateAppSettings{
			Enabled: clonePtr(s.DateApp.Enabled),
			Format:  clonePtr(s.DateApp.Format),
		}
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// IndicatorStates reports which of the three corner indicators are lit
type IndicatorStates struct {
	Indicator1 bool `json:"indicator1"`
	Indicator2 bool `json:"indicator2"`
	Indicator3 bool `json:"indicator3"`
}

// Stats is the device status snapshot from GET /api/stats
type Stats struct {
	Uptime      uint64           `json:"uptime"` // seconds
	WiFiSignal  int8             `json:"wifiSignal"`
	Heap        uint32           `json:"heap"`
	Temperature *float32         `json:"temperature,omitempty"`
	Humidity    *float32         `json:"humidity,omitempty"`
	LDR         *uint16          `json:"ldr,omitempty"`
	Lux         *float32         `json:"lux,omitempty"`
	Battery     *uint8           `json:"battery,omitempty"`
	Matrix      bool             `json:"matrix"`
	CurrentApp  *string          `json:"currentApp,omitempty"`
	Indicators  *IndicatorStates `json:"indicators,omitempty"`
}

// AppInfo is one entry in the app loop
type AppInfo struct {
	Name    string  `json:"name"`
	Icon    *uint32 `json:"icon,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}

// LoopInfo is the app loop from GET /api/loop
type LoopInfo struct {
	Apps    []AppInfo `json:"apps"`
	Current *string   `json:"current,omitempty"`
}

// MoodLight is the ambient lighting request for POST /api/moodlight
type MoodLight struct {
	Brightness *uint8  `json:"brightness,omitempty"`
	Color      *Color  `json:"color,omitempty"`
	Kelvin     *uint16 `json:"kelvin,omitempty"`
}

type powerRequest struct {
	Power bool `json:"power"`
}

type sleepRequest struct {
	Sleep uint32 `json:"sleep"`
}

type switchRequest struct {
	Name string `json:"name"`
}

type indicatorRequest struct {
	Color *Color `json:"color,omitempty"`
}

type soundRequest struct {
	Sound string `json:"sound"`
}

type rtttlRequest struct {
	RTTTL string `json:"rtttl"`
}
