package response

import "github.com/tagfleet/rfid-reader/pkg/settings"

// NetworkSettings is the decoded body of SET_GET_NETWORK's GET branch.
type NetworkSettings struct {
	Response
	Settings settings.NetworkSettings
}

// ParseNetworkSettings decodes a network-settings GET response.
func ParseNetworkSettings(r Response) (NetworkSettings, error) {
	s, err := settings.DecodeNetworkSettings(r.Body)
	if err != nil {
		return NetworkSettings{Response: r}, err
	}
	return NetworkSettings{Response: r, Settings: s}, nil
}

// RemoteNetworkSettings is the decoded body of
// SET_GET_REMOTE_NETWORK's GET branch.
type RemoteNetworkSettings struct {
	Response
	Settings settings.RemoteNetworkSettings
}

// ParseRemoteNetworkSettings decodes a remote-network-settings GET
// response.
func ParseRemoteNetworkSettings(r Response) (RemoteNetworkSettings, error) {
	s, err := settings.DecodeRemoteNetworkSettings(r.Body)
	if err != nil {
		return RemoteNetworkSettings{Response: r}, err
	}
	return RemoteNetworkSettings{Response: r, Settings: s}, nil
}
