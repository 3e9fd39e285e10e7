package model

// Property is one key/value entry in a configuration's property bag.
// Properties render in insertion order.
type Property struct {
	Key   string
	Value string
}

// Configuration is one (build-type, platform) pair with associated build
// properties, attached to a project or to the solution.
type Configuration struct {
	// BuildType is the build flavor, e.g. "Debug" or "Release"
	BuildType string

	// Platform is the target platform, e.g. "x64" or "Any CPU"
	Platform string

	properties []Property
}

// NewConfiguration creates a configuration for the given pair.
func NewConfiguration(buildType, platform string) *Configuration {
	return &Configuration{
		BuildType: buildType,
		Platform:  platform,
	}
}

// Pair returns the canonical "BuildType|Platform" form used by solution files.
func (c *Configuration) Pair() string {
	return c.BuildType + "|" + c.Platform
}

// SetProperty appends a property, or updates it in place if the key exists.
func (c *Configuration) SetProperty(key, value string) {
	for i := range c.properties {
		if c.properties[i].Key == key {
			c.properties[i].Value = value
			return
		}
	}
	c.properties = append(c.properties, Property{Key: key, Value: value})
}

// Properties returns the property bag in insertion order.
func (c *Configuration) Properties() []Property {
	return c.properties
}

// Validate checks the configuration is well formed.
func (c *Configuration) Validate() error {
	if c.BuildType == "" {
		return validationErr(ErrInvalidConfiguration, "", "empty build type")
	}
	if c.Platform == "" {
		return validationErr(ErrInvalidConfiguration, "", "configuration %q has empty platform", c.BuildType)
	}

	seen := make(map[string]bool, len(c.properties))
	for _, p := range c.properties {
		if seen[p.Key] {
			return validationErr(ErrInvalidConfiguration, "", "configuration %q has duplicate property %q", c.Pair(), p.Key)
		}
		seen[p.Key] = true
	}
	return nil
}
