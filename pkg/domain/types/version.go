package types

// Version is the version of autotag. Overwritten by ldflags at release build.
var Version = "dev"
