// Package primeos carries module-level metadata shared by the CLI and
// embedding programs.
package primeos

// Version is the primeos release version.
const Version = "0.1.0"
