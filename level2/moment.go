package level2

// BlockType names a Message 31 data block. The three-character names match
// the wire encoding found at the top of each block (User 3.2.4.17).
type BlockType string

const (
	BlockVolume    BlockType = "VOL"
	BlockElevation BlockType = "ELV"
	BlockRadial    BlockType = "RAD"

	BlockRef BlockType = "REF"
	BlockVel BlockType = "VEL"
	BlockSw  BlockType = "SW "
	BlockZdr BlockType = "ZDR"
	BlockPhi BlockType = "PHI"
	BlockRho BlockType = "RHO"
	BlockCfp BlockType = "CFP"
)

// genericDataMoment is the wire layout of a moment block header, minus the
// data block type and name which are retrieved separately (User 3.2.4.17.2)
type genericDataMoment struct {
	Reserved                      uint32  //
	NumberDataMomentGates         uint16  // NumberDataMomentGates Number of data moment gates for current radial
	DataMomentRange               uint16  // DataMomentRange Range to center of first range gate
	DataMomentRangeSampleInterval uint16  // DataMomentRangeSampleInterval Size of data moment sample interval
	TOVER                         uint16  // TOVER Threshold parameter which specifies the minimum difference in echo power between two resolution gates for them not to be labeled "overlayed"
	SNRThreshold                  int16   // SNRThreshold SNR threshold for valid data, in 1/8 dB (may be negative)
	ControlFlags                  uint8   // ControlFlags Indicates special control features
	DataWordSize                  uint8   // DataWordSize Number of bits (DWS) used for storing data for each Data Moment gate
	Scale                         float32 // Scale value used to convert Data Moments from integer to floating point data
	Offset                        float32 // Offset value used to convert Data Moments from integer to floating point data
}

// MomentDataBlock holds one decoded moment block for one radial. Exactly one
// of Data8 or Data16 is populated, matching DataWordSize.
type MomentDataBlock struct {
	NumberDataMomentGates         uint16
	DataMomentRange               uint16
	DataMomentRangeSampleInterval uint16
	TOVER                         uint16
	SNRThreshold                  int16
	ControlFlags                  uint8
	DataWordSize                  uint8
	Scale                         float32
	Offset                        float32

	Data8  []uint8
	Data16 []uint16
}

const (
	// MomentDataBelowThreshold ...
	MomentDataBelowThreshold = 999

	// MomentDataFolded ...
	MomentDataFolded = 998
)

// ScaledData converts the raw moment values to their physical values.
// For all data moment integer values N = 0 indicates received signal is below
// threshold and N = 1 indicates range folded data. Actual data range is N = 2
// through 255, or 1023 for data resolution size 8, and 10 bits respectively.
func (d *MomentDataBlock) ScaledData() []float32 {
	n := int(d.NumberDataMomentGates)
	scaled := make([]float32, 0, n)
	for i := 0; i < n; i++ {
		val := d.Sample(i)
		switch val {
		case 0:
			scaled = append(scaled, MomentDataBelowThreshold)
		case 1:
			scaled = append(scaled, MomentDataFolded)
		default:
			scaled = append(scaled, scaleUint(val, d.Offset, d.Scale))
		}
	}
	return scaled
}

// Sample returns the i'th raw data word regardless of word size.
func (d *MomentDataBlock) Sample(i int) uint16 {
	if d.DataWordSize == 8 {
		return uint16(d.Data8[i])
	}
	return d.Data16[i]
}

// scaleUint converts unsigned integer data that can be converted to floating point
// data using the Scale and Offset fields, i.e., F = (N - OFFSET) / SCALE where
// N is the integer data value and F is the resulting floating point value. A
// scale value of 0 indicates floating point moment data for each range gate.
func scaleUint(n uint16, offset, scale float32) float32 {
	val := float32(n)
	if scale == 0 {
		return val
	}
	return (val - offset) / scale
}
