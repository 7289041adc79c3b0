package lib

import "encoding/json"
import "fmt"
import "runtime"
import "strings"

// Parsecsv convert a string of comma seperated value into list of
// trimmed, non-empty string values.
func Parsecsv(input string) []string {
	if input == "" {
		return nil
	}
	outs := make([]string, 0)
	for _, s := range strings.Split(input, ",") {
		if s = strings.Trim(s, " \t\r\n"); s != "" {
			outs = append(outs, s)
		}
	}
	return outs
}

// Prettystats marshal stats into JSON text, indented if pretty is true.
func Prettystats(stats map[string]interface{}, pretty bool) string {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(stats, "", "  ")
	} else {
		data, err = json.Marshal(stats)
	}
	if err != nil {
		panic(fmt.Errorf("Prettystats(): %v", err))
	}
	return string(data)
}

// Callsite return "file:line" of the caller `skip` frames above
// Callsite's caller, used as site information for allocations.
func Callsite(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		file = file[i+1:]
	}
	return fmt.Sprintf("%s:%d", file, line)
}
