package main

import (
	"runtime/debug"
	"time"
)

var commit = "dev"
var buildDate = ""

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "dev" && len(s.Value) >= 7 {
					commit = s.Value[:7]
				}
			case "vcs.time":
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil && buildDate == "" {
					buildDate = t.Format("2006-01-02")
				}
			}
		}
	}
	if buildDate == "" {
		buildDate = "unknown"
	}
}
