// Package dashboard implements the interactive terminal view behind
// 'awtrix dashboard'.
//
// The dashboard polls device statistics and the app loop on a fixed
// interval and lets the user step through apps or send a quick
// notification without leaving the terminal:
//
//	┌────────────────────┐
//	│ tick / key press   │
//	└─────────┬──────────┘
//	          ▼
//	┌────────────────────┐     ┌──────────────┐
//	│ Model.Update       │────▶│ Device (HTTP)│
//	└─────────┬──────────┘     └──────┬───────┘
//	          ▼                       │
//	┌────────────────────┐            │
//	│ Model.View         │◀───────────┘ refreshMsg / actionMsg
//	└────────────────────┘
//
// The Model is a plain bubbletea model, so tests drive it by calling
// Update with messages and running the returned commands.
package dashboard
