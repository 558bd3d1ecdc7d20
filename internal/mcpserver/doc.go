// Package mcpserver exposes the extension settings and the environment setup
// as Model Context Protocol tools over stdio.
//
// Tools:
//
//	settings_get              persisted settings with secrets redacted
//	settings_test_connection  tests the persisted connection
//	setup_env                 starts a setup run and returns its id
//	setup_status              current setup stage
package mcpserver
