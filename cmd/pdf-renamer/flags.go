// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlags binds config keys to the named flags.
func bindFlags(keys map[string]string, lookup func(string) *pflag.Flag) {
	for key, name := range keys {
		if err := viper.BindPFlag(key, lookup(name)); err != nil {
			panic(err)
		}
	}
}
