// Package config defines the configuration record shared by the name
// generator and the provisioning pipeline.
//
// The [Config] struct is the canonical representation of one run's input:
// the generated bucket name and the ordered list of natural-language
// infrastructure commands. It is loaded from and saved to a single file
// which both entry points read and rewrite wholesale. There is no partial
// update and no merge of unknown keys.
package config
