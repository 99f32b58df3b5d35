package main

import (
	"github.com/spf13/cobra"

	"github.com/muurk/awtrix/internal/awtrix"
)

func newNotifyCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send or dismiss notifications",
	}
	cmd.AddCommand(newNotifySendCmd(c), newNotifyDismissCmd(c))
	return cmd
}

func newNotifySendCmd(c *cli) *cobra.Command {
	var (
		msg         messageFlags
		sound       string
		rtttl       string
		loopSound   bool
		hold        bool
		wakeup      bool
		stack       bool
		scrollSpeed uint32
	)

	cmd := &cobra.Command{
		Use:   "send [TEXT]",
		Short: "Show a one-shot notification",
		Long: `Show a notification over the app loop.

The text can be given as an argument or with --text. With --file the
notification is read from a JSON document in the device's wire format and
the other content flags are ignored.`,
		Example: `  awtrix notify send "Hello World"
  awtrix notify send "Build failed" --color red --icon 555 --sound alarm --hold
  awtrix notify send "Uploading" --progress 40 --progress-color "#00FF00"
  awtrix notify send --file notification.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n awtrix.Notification
			if msg.file != "" {
				if len(args) > 0 || msg.text != "" {
					return awtrix.NewValidationError("--file cannot be combined with notification text")
				}
				loaded, err := readJSONFile[awtrix.Notification](msg.file, c.stdin)
				if err != nil {
					return err
				}
				n = loaded
			} else {
				if len(args) > 0 {
					msg.text = args[0]
				}
				if msg.text == "" {
					return awtrix.NewValidationError("notification text is required (argument, --text or --file)")
				}

				b := awtrix.NewNotificationBuilder()
				if err := applyMessage(b, &msg, cmd.Flags()); err != nil {
					return err
				}
				if sound != "" {
					b.Sound(sound)
				}
				if rtttl != "" {
					if err := awtrix.ValidateRTTTL(rtttl); err != nil {
						return err
					}
					b.RTTTL(rtttl)
				}
				if loopSound {
					b.LoopSound(true)
				}
				if hold {
					b.Hold(true)
				}
				if wakeup {
					b.Wakeup(true)
				}
				if cmd.Flags().Changed("stack") {
					b.Stack(stack)
				}
				if cmd.Flags().Changed("scroll-speed") {
					b.ScrollSpeed(scrollSpeed)
				}
				n = b.Build()
			}

			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctl.Notify(cmd.Context(), n); err != nil {
				return err
			}
			c.done("Notification sent")
			return nil
		},
	}

	msg.bind(cmd.Flags())
	f := cmd.Flags()
	f.StringVarP(&sound, "sound", "s", "", "Sound file to play")
	f.StringVar(&rtttl, "rtttl", "", "RTTTL melody to play")
	f.BoolVar(&loopSound, "loop-sound", false, "Loop the sound while the notification shows")
	f.BoolVar(&hold, "hold", false, "Keep the notification until dismissed")
	f.BoolVarP(&wakeup, "wakeup", "w", false, "Wake the matrix if it is off")
	f.BoolVar(&stack, "stack", true, "Queue behind other notifications instead of replacing them")
	f.Uint32Var(&scrollSpeed, "scroll-speed", 100, "Scroll speed in percent")
	return cmd
}

func newNotifyDismissCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss",
		Short: "Dismiss a held notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctl.DismissNotification(cmd.Context()); err != nil {
				return err
			}
			c.done("Notification dismissed")
			return nil
		},
	}
}
