// Package internal contains the wrapper logic shared by every idfdock entry point.
//
// It provides configuration resolution, argument routing, serial device
// location, session policy, command composition and process execution. The
// docker package supplies the Engine API queries used to resolve sessions.
package internal
