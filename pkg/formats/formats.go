// Package formats decodes the binary level records stored in WAD lumps.
package formats
