package sanctions

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// OFACListURL is the published SDN list of the US Treasury.
const OFACListURL = "https://www.treasury.gov/ofac/downloads/sdn.xml"

const digitalCurrencyPrefix = "Digital Currency Address - "

// Listing is one sanctioned party that has at least one digital currency address.
type Listing struct {
	UID       string
	Name      string
	Type      string
	Addresses []ListedAddress
}

// ListedAddress is a digital currency address attached to a listing.
type ListedAddress struct {
	UID     string
	Symbol  string
	Address string
}

type sdnList struct {
	Entries []sdnEntry `xml:"sdnEntry"`
}

type sdnEntry struct {
	UID       string  `xml:"uid"`
	Type      string  `xml:"sdnType"`
	FirstName string  `xml:"firstName"`
	LastName  string  `xml:"lastName"`
	IDs       []sdnID `xml:"idList>id"`
}

type sdnID struct {
	UID    string `xml:"uid"`
	Type   string `xml:"idType"`
	Number string `xml:"idNumber"`
}

func (e sdnEntry) name() string {
	first, last := strings.TrimSpace(e.FirstName), strings.TrimSpace(e.LastName)
	switch {
	case first != "" && last != "":
		return first + " " + last
	default:
		return last + first
	}
}

// ParseOFAC decodes an SDN XML document and keeps the entries listing digital currency addresses.
func ParseOFAC(data []byte) ([]Listing, error) {
	var list sdnList
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode sdn list: %w", err)
	}
	if len(list.Entries) == 0 {
		return nil, errors.New("decode sdn list: no entries")
	}

	listings := make([]Listing, 0)
	for _, entry := range list.Entries {
		uid := strings.TrimSpace(entry.UID)
		if uid == "" {
			continue
		}
		var addresses []ListedAddress
		for _, id := range entry.IDs {
			symbol, ok := strings.CutPrefix(strings.TrimSpace(id.Type), digitalCurrencyPrefix)
			symbol = strings.TrimSpace(symbol)
			address := strings.TrimSpace(id.Number)
			if !ok || symbol == "" || address == "" {
				continue
			}
			addresses = append(addresses, ListedAddress{UID: strings.TrimSpace(id.UID), Symbol: strings.ToUpper(symbol), Address: address})
		}
		if len(addresses) == 0 {
			continue
		}
		listings = append(listings, Listing{UID: uid, Name: entry.name(), Type: strings.TrimSpace(entry.Type), Addresses: addresses})
	}

	sort.Slice(listings, func(i, j int) bool { return listings[i].UID < listings[j].UID })
	return listings, nil
}
