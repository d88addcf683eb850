package response

import "github.com/tagfleet/rfid-reader/pkg/settings"

// ReaderSettings is the decoded body of GET_ALL_PARAM.
type ReaderSettings struct {
	Response
	Settings settings.ReaderSettings
}

// ParseReaderSettings decodes a GET_ALL_PARAM response.
func ParseReaderSettings(r Response) (ReaderSettings, error) {
	s, err := settings.DecodeReaderSettings(r.Body)
	if err != nil {
		return ReaderSettings{Response: r}, err
	}
	return ReaderSettings{Response: r, Settings: s}, nil
}
