package attachment

import "strings"

// Classification is the mimetype-derived category of an attachment. At most
// one of IsImage/IsText is set; neither set means binary/other.
type Classification struct {
	IsImage bool
	IsText  bool
}

var textMimePrefixes = []string{
	"text/",
	"application/json",
	"application/javascript",
	"application/typescript",
	"application/xml",
	"application/yaml",
	"application/x-yaml",
}

// Classify maps a declared mimetype to a category. The mapping trusts the
// declaration; byte-level validation for images happens separately at
// download time and is the authoritative check.
func Classify(mimetype string) Classification {
	if strings.HasPrefix(mimetype, "image/") {
		return Classification{IsImage: true}
	}
	for _, prefix := range textMimePrefixes {
		if strings.HasPrefix(mimetype, prefix) {
			return Classification{IsText: true}
		}
	}
	return Classification{}
}
