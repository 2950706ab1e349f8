package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.FD.Validate(); err != nil {
		return err
	}
	if err := c.FL.Validate(); err != nil {
		return err
	}
	if err := c.List.Validate(); err != nil {
		return err
	}
	return c.Output.Validate()
}

// Validate validates a tool configuration.
func (c *ToolConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Storage, validation.Required),
	)
}

// Validate validates the list configuration.
func (c *ListConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.NameWidth, validation.Required, validation.Min(1)),
		validation.Field(&c.TagsWidth, validation.Required, validation.Min(1)),
	)
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Color, validation.Required, validation.In(ColorAuto, ColorAlways, ColorNever)),
	)
}
