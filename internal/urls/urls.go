package urls

// Documentation URLs for the AWTRIX3 firmware
// All firmware pages live under https://blueforcer.github.io/awtrix3/

// APIReference documents every HTTP endpoint and MQTT topic the CLI uses.
const APIReference = "https://blueforcer.github.io/awtrix3/#/api"

// Effects lists the background effects accepted by --effect.
const Effects = "https://blueforcer.github.io/awtrix3/#/effects"

// Settings documents the device settings and their value ranges.
const Settings = "https://blueforcer.github.io/awtrix3/#/api?id=change-settings"

// Icons is the LaMetric icon gallery; the numeric ids work with --icon.
const Icons = "https://developer.lametric.com/icons"

// Troubleshooting covers recovering a device that dropped off the network.
const Troubleshooting = "https://blueforcer.github.io/awtrix3/#/quickstart"
