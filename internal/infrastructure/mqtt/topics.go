package mqtt

import "fmt"

// Topic prefixes.
//
// Device topics use the scheme graypower/device/{device_id}/{aspect}.
// Device IDs never contain '/', '+' or '#', so they are safe as a level.
const (
	// TopicPrefix is the root of every topic this service publishes.
	TopicPrefix = "graypower"

	// TopicPrefixDevice is the base for per-device topics.
	TopicPrefixDevice = TopicPrefix + "/device"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = TopicPrefix + "/system"
)

// Topics provides builders for Gray Logic Power MQTT topics.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.DeviceState("bulb-desk")
//	// Returns: "graypower/device/bulb-desk/state"
type Topics struct{}

// DeviceState returns the retained snapshot topic for a device.
//
// Example: graypower/device/bulb-desk/state
func (Topics) DeviceState(deviceID string) string {
	return fmt.Sprintf("%s/%s/state", TopicPrefixDevice, deviceID)
}

// DeviceSensor returns the topic for sensor readings from a device.
//
// Example: graypower/device/outlet-tv/sensor
func (Topics) DeviceSensor(deviceID string) string {
	return fmt.Sprintf("%s/%s/sensor", TopicPrefixDevice, deviceID)
}

// SystemStatus returns the online/offline status topic.
//
// Example: graypower/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// SystemTotals returns the topic for the aggregate device and energy counters.
//
// Example: graypower/system/totals
func (Topics) SystemTotals() string {
	return fmt.Sprintf("%s/totals", TopicPrefixSystem)
}

// AllDeviceStates returns a pattern matching every device snapshot.
//
// Pattern: graypower/device/+/state
func (Topics) AllDeviceStates() string {
	return fmt.Sprintf("%s/+/state", TopicPrefixDevice)
}

// AllTopics returns a pattern matching all Gray Logic Power topics.
//
// Pattern: graypower/#
func (Topics) AllTopics() string {
	return TopicPrefix + "/#"
}
