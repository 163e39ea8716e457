package models

// StationField is the label that always carries the station name.
const StationField = "Station"

// MasterDataRecord holds the key/value pairs of a station's master data page.
// The set of labels depends on the page.
type MasterDataRecord struct {
	Station string
	Fields  map[string]string
	// Labels in the order they were first seen.
	Labels []string
}

func NewMasterDataRecord(station string) MasterDataRecord {
	r := MasterDataRecord{
		Station: station,
		Fields:  make(map[string]string),
	}
	r.Set(StationField, station)
	return r
}

// Set stores value under label. A repeated label keeps its original position
// and takes the new value.
func (r *MasterDataRecord) Set(label, value string) {
	if _, exists := r.Fields[label]; !exists {
		r.Labels = append(r.Labels, label)
	}
	r.Fields[label] = value
}

func (r MasterDataRecord) Get(label string) (string, bool) {
	v, ok := r.Fields[label]
	return v, ok
}
