package awtrix

// clampProgress limits a progress value to 0-100
func clampProgress(p int) uint8 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return uint8(p)
	}
}

// NotificationBuilder provides a fluent API for building a Notification.
// Setters never fail; inputs that need validation (colors, icons) are
// checked by the caller before they reach the builder.
//
// Example usage:
//
//	n := awtrix.NewNotificationBuilder().
//	    Text("Build passed").
//	    Color(awtrix.RGB(0, 255, 0)).
//	    Duration(5).
//	    Build()
type NotificationBuilder struct {
	n Notification
}

// NewNotificationBuilder creates a builder with every field absent
func NewNotificationBuilder() *NotificationBuilder {
	return &NotificationBuilder{}
}

func (b *NotificationBuilder) Text(text string) *NotificationBuilder {
	b.n.Text = Ptr(text)
	return b
}

func (b *NotificationBuilder) Icon(icon uint32) *NotificationBuilder {
	b.n.Icon = Ptr(icon)
	return b
}

func (b *NotificationBuilder) Color(c Color) *NotificationBuilder {
	b.n.Color = Ptr(c)
	return b
}

// Duration sets how long the notification stays up, in seconds
func (b *NotificationBuilder) Duration(seconds uint32) *NotificationBuilder {
	b.n.Duration = Ptr(seconds)
	return b
}

func (b *NotificationBuilder) Sound(sound string) *NotificationBuilder {
	b.n.Sound = Ptr(sound)
	return b
}

func (b *NotificationBuilder) RTTTL(rtttl string) *NotificationBuilder {
	b.n.RTTTL = Ptr(rtttl)
	return b
}

func (b *NotificationBuilder) LoopSound(loop bool) *NotificationBuilder {
	b.n.LoopSound = Ptr(loop)
	return b
}

// Progress sets the progress bar, clamped to 0-100
func (b *NotificationBuilder) Progress(p int) *NotificationBuilder {
	b.n.Progress = Ptr(clampProgress(p))
	return b
}

func (b *NotificationBuilder) ProgressColor(c Color) *NotificationBuilder {
	b.n.ProgressColor = Ptr(c)
	return b
}

func (b *NotificationBuilder) ProgressBackground(c Color) *NotificationBuilder {
	b.n.ProgressBackground = Ptr(c)
	return b
}

func (b *NotificationBuilder) Rainbow(on bool) *NotificationBuilder {
	b.n.Rainbow = Ptr(on)
	return b
}

// Hold keeps the notification up until it is dismissed
func (b *NotificationBuilder) Hold(on bool) *NotificationBuilder {
	b.n.Hold = Ptr(on)
	return b
}

// Wakeup turns the matrix on if it is off
func (b *NotificationBuilder) Wakeup(on bool) *NotificationBuilder {
	b.n.Wakeup = Ptr(on)
	return b
}

// Stack queues the notification behind the current one instead of replacing it
func (b *NotificationBuilder) Stack(on bool) *NotificationBuilder {
	b.n.Stack = Ptr(on)
	return b
}

func (b *NotificationBuilder) NoScroll(on bool) *NotificationBuilder {
	b.n.NoScroll = Ptr(on)
	return b
}

// ScrollSpeed sets the scroll speed as a percentage of the default
func (b *NotificationBuilder) ScrollSpeed(percent uint32) *NotificationBuilder {
	b.n.ScrollSpeed = Ptr(percent)
	return b
}

func (b *NotificationBuilder) Effect(name string) *NotificationBuilder {
	b.n.Effect = Ptr(name)
	return b
}

func (b *NotificationBuilder) EffectSettings(s EffectSettings) *NotificationBuilder {
	b.n.EffectSettings = Ptr(s)
	return b
}

// Build returns the notification. It cannot fail.
func (b *NotificationBuilder) Build() Notification {
	return b.n
}

// CustomAppBuilder provides a fluent API for building a CustomApp
type CustomAppBuilder struct {
	app CustomApp
}

// NewCustomAppBuilder creates a builder with every field absent
func NewCustomAppBuilder() *CustomAppBuilder {
	return &CustomAppBuilder{}
}

func (b *CustomAppBuilder) Text(text string) *CustomAppBuilder {
	b.app.Text = Ptr(text)
	return b
}

func (b *CustomAppBuilder) Icon(icon uint32) *CustomAppBuilder {
	b.app.Icon = Ptr(icon)
	return b
}

func (b *CustomAppBuilder) Color(c Color) *CustomAppBuilder {
	b.app.Color = Ptr(c)
	return b
}

func (b *CustomAppBuilder) Duration(seconds uint32) *CustomAppBuilder {
	b.app.Duration = Ptr(seconds)
	return b
}

// Progress sets the progress bar, clamped to 0-100
func (b *CustomAppBuilder) Progress(p int) *CustomAppBuilder {
	b.app.Progress = Ptr(clampProgress(p))
	return b
}

func (b *CustomAppBuilder) ProgressColor(c Color) *CustomAppBuilder {
	b.app.ProgressColor = Ptr(c)
	return b
}

func (b *CustomAppBuilder) ProgressBackground(c Color) *CustomAppBuilder {
	b.app.ProgressBackground = Ptr(c)
	return b
}

func (b *CustomAppBuilder) Rainbow(on bool) *CustomAppBuilder {
	b.app.Rainbow = Ptr(on)
	return b
}

func (b *CustomAppBuilder) NoScroll(on bool) *CustomAppBuilder {
	b.app.NoScroll = Ptr(on)
	return b
}

func (b *CustomAppBuilder) Effect(name string) *CustomAppBuilder {
	b.app.Effect = Ptr(name)
	return b
}

// Lifetime removes the app when it has not been updated for this many seconds
func (b *CustomAppBuilder) Lifetime(seconds uint32) *CustomAppBuilder {
	b.app.Lifetime = Ptr(seconds)
	return b
}

// Save persists the app across device reboots
func (b *CustomAppBuilder) Save(on bool) *CustomAppBuilder {
	b.app.Save = Ptr(on)
	return b
}

// Pos places the app at a position in the loop
func (b *CustomAppBuilder) Pos(pos uint32) *CustomAppBuilder {
	b.app.Pos = Ptr(pos)
	return b
}

// Build returns the custom app. It cannot fail.
func (b *CustomAppBuilder) Build() CustomApp {
	return b.app
}
