// Package awtrix provides a client and data model for the HTTP API of
// AWTRIX3 LED-matrix clocks (Ulanzi TC001 and compatible hardware).
//
// # Data Model
//
// The device exchanges sparse JSON objects: a field that is absent means
// "leave unchanged", which is not the same as null or false. Every optional
// field is therefore a pointer tagged omitempty, and values are built fresh
// for each request:
//
//   - Notification: a one-shot overlay (POST /api/notify)
//   - CustomApp: a named entry in the app loop (POST /api/custom?name=...)
//   - Settings: device configuration (GET/POST /api/settings)
//   - Stats, LoopInfo: read-only snapshots
//
// Colors go out as [r,g,b] and are accepted back either in that form or as
// a hex string. ParseColor is the stricter parser for user input and also
// understands "r,g,b" and a small table of color names.
//
// # Settings Keys
//
// SettingValue, SetSetting and ApplySetting address individual settings by
// a dotted key such as "brightness" or "time_app.format". The key set is
// fixed; SettingKeys lists it.
//
// # Usage Example
//
//	client, err := awtrix.NewClient("192.168.1.50",
//	    awtrix.WithHTTPClient(awtrix.NewHTTPClient(awtrix.DefaultTransportOptions())),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	n := awtrix.NewNotificationBuilder().
//	    Text("Hello").
//	    Color(awtrix.RGB(255, 0, 0)).
//	    Progress(42).
//	    Build()
//	if err := client.Notify(ctx, n); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Every error returned by this package is a *DeviceError. Use the Is*
// helpers to branch on its category:
//
//	if awtrix.IsAPIError(err) {
//	    // device answered with a non-2xx status
//	} else if awtrix.IsTransportError(err) {
//	    fmt.Println(awtrix.GetTroubleshootingHint(err))
//	}
//
// Requests are never retried.
package awtrix
