// Package logutils holds small formatting helpers shared by the logging
// and diagnostics paths.
package logutils

import (
	"encoding/hex"
	"io"
	"strconv"
)

// Hexdump writes a canonical hex dump of a raw PS/2 frame or scan code
// sequence to w, for diagnostic logging of undecodable bytes.
func Hexdump(w io.Writer, payload []byte) error {
	dumper := hex.Dumper(w)
	defer dumper.Close()
	if _, err := dumper.Write(payload); err != nil {
		return err
	}
	return nil
}

// ShortCallerFormatter trims a caller file path down to its base name,
// used as zerolog.CallerMarshalFunc.
func ShortCallerFormatter(pc uintptr, file string, line int) string {
	short := file
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			short = file[i+1:]
			break
		}
	}
	return short + ":" + strconv.Itoa(line)
}
