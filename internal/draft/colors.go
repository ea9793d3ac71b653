package draft

// ColorBucket is the closed set of buckets a seat's collection files cards
// under. The set is fixed and exhaustive: the five colors plus colorless
// and multicolor.
type ColorBucket string

const (
	BucketWhite      ColorBucket = "W"
	BucketBlue       ColorBucket = "U"
	BucketBlack      ColorBucket = "B"
	BucketRed        ColorBucket = "R"
	BucketGreen      ColorBucket = "G"
	BucketColorless  ColorBucket = "colorless"
	BucketMulticolor ColorBucket = "multicolor"
)

// Buckets lists every bucket in WUBRG display order.
var Buckets = [...]ColorBucket{
	BucketWhite,
	BucketBlue,
	BucketBlack,
	BucketRed,
	BucketGreen,
	BucketColorless,
	BucketMulticolor,
}

var bucketByColor = map[string]ColorBucket{
	"W": BucketWhite,
	"U": BucketBlue,
	"B": BucketBlack,
	"R": BucketRed,
	"G": BucketGreen,
}

// BucketFor maps a color identity to its bucket. The function is total:
// an empty identity is colorless, a single color maps to that color's
// bucket, and anything else is multicolor. Unrecognized symbols are
// ignored rather than inventing a bucket.
func BucketFor(colorIdentity []string) ColorBucket {
	seen := make(map[ColorBucket]bool, len(colorIdentity))
	var only ColorBucket
	for _, color := range colorIdentity {
		if bucket, ok := bucketByColor[color]; ok && !seen[bucket] {
			seen[bucket] = true
			only = bucket
		}
	}

	switch len(seen) {
	case 0:
		return BucketColorless
	case 1:
		return only
	default:
		return BucketMulticolor
	}
}
