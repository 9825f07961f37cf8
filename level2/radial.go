package level2

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

var pointersPerBuild = map[float32]int{
	18: 9,
	19: 10,
}

// RadialHeader is the non-data portion of a Message 31 radial (User 3.2.4.17)
type RadialHeader struct {
	RadarIdentifier              [4]byte // ICAO (eg KMPX for Minneapolis)
	CollectionTime               uint32  // CollectionTime Radial data collection time in milliseconds past midnight GMT
	CollectionDate               uint16  // CollectionDate Current Julian date (1 = Jan 1 1970)
	AzimuthNumber                uint16  // AzimuthNumber Radial number within elevation scan
	AzimuthAngle                 float32 // AzimuthAngle Azimuth angle at which radial data was collected
	CompressionIndicator         uint8   // CompressionIndicator Indicates if message type 31 is compressed and what method of compression is used. The Data Header Block is not compressed.
	Spare                        uint8   // unused
	RadialLength                 uint16  // RadialLength Uncompressed length of the radial in bytes including the Data Header block length
	AzimuthResolutionSpacingCode uint8   // AzimuthResolutionSpacing Code for the Azimuthal spacing between adjacent radials. 1 = .5 degrees, 2 = 1 degree
	RadialStatus                 uint8   // RadialStatus Radial Status
	ElevationNumber              uint8   // ElevationNumber Elevation number within volume scan
	CutSectorNumber              uint8   // CutSectorNumber Sector Number within cut
	ElevationAngle               float32 // ElevationAngle Elevation angle at which radial radar data was collected
	RadialSpotBlankingStatus     uint8   // RadialSpotBlankingStatus Spot blanking status for current radial, elevation scan and volume scan
	AzimuthIndexingMode          uint8   // AzimuthIndexingMode Azimuth indexing value (Set if azimuth angle is keyed to constant angles)
	DataBlockCount               uint16  // Number of data blocks used
	// normally this would be the data block pointers, but we dont actually use this
}

func (h RadialHeader) String() string {
	return fmt.Sprintf("Radial - %s @ %v deg=%.2f tilt=%.2f",
		string(h.RadarIdentifier[:]),
		h.Date(),
		h.AzimuthAngle,
		h.ElevationAngle,
	)
}

// Date and time this radial was collected
func (h RadialHeader) Date() time.Time {
	return timePoint(h.CollectionDate, h.CollectionTime)
}

// Radial is one decoded Message 31 - Digital Radar Data Generic Format
// (User 3.2.4.17): one azimuth slice of a sweep, with its moment data blocks
// keyed by block type.
type Radial struct {
	Header    RadialHeader
	Volume    VolumeData
	Elevation ElevationData
	Status    RadialStatusData
	Moments   map[BlockType]*MomentDataBlock
}

// dataBlock is the 4 byte prefix naming each block of data (GenericDataMoment,
// VolumeData, etc), normally found at the top of tables XVII-[BEFH] (User 3.2.4.17)
type dataBlock struct {
	DataBlockType [1]byte
	DataName      [3]byte
}

// NewRadial decodes one Message 31 from the provided io.Reader. The number of
// data block pointers following the header depends on the RDA build.
func NewRadial(r io.Reader, build float32) (*Radial, error) {
	header := RadialHeader{}
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, err
	}

	// skip over the data block pointers, which is build dependent
	if err := binary.Read(r, binary.BigEndian, make([]uint32, pointersPerBuild[build])); err != nil {
		return nil, err
	}

	radial := &Radial{
		Header:  header,
		Moments: make(map[BlockType]*MomentDataBlock),
	}

	for i := uint16(0); i < header.DataBlockCount; i++ {
		d := dataBlock{}
		if err := binary.Read(r, binary.BigEndian, &d); err != nil {
			return nil, err
		}

		blockType := BlockType(d.DataName[:])
		switch blockType {
		case BlockVolume:
			if err := binary.Read(r, binary.BigEndian, &radial.Volume); err != nil {
				return nil, err
			}
		case BlockElevation:
			if err := binary.Read(r, binary.BigEndian, &radial.Elevation); err != nil {
				return nil, err
			}
		case BlockRadial:
			if err := binary.Read(r, binary.BigEndian, &radial.Status); err != nil {
				return nil, err
			}
		case BlockRef, BlockVel, BlockSw, BlockZdr, BlockPhi, BlockRho, BlockCfp:
			moment, err := newMomentDataBlock(r)
			if err != nil {
				return nil, err
			}
			radial.Moments[blockType] = moment
		default:
			return nil, fmt.Errorf("data block - unknown type %q", string(d.DataName[:]))
		}
	}
	return radial, nil
}

func newMomentDataBlock(r io.Reader) (*MomentDataBlock, error) {
	g := genericDataMoment{}
	if err := binary.Read(r, binary.BigEndian, &g); err != nil {
		return nil, err
	}

	moment := &MomentDataBlock{
		NumberDataMomentGates:         g.NumberDataMomentGates,
		DataMomentRange:               g.DataMomentRange,
		DataMomentRangeSampleInterval: g.DataMomentRangeSampleInterval,
		TOVER:                         g.TOVER,
		SNRThreshold:                  g.SNRThreshold,
		ControlFlags:                  g.ControlFlags,
		DataWordSize:                  g.DataWordSize,
		Scale:                         g.Scale,
		Offset:                        g.Offset,
	}

	// the data moment length is determined with (num gates * word size) / 8
	gates := int(g.NumberDataMomentGates)
	switch g.DataWordSize {
	case 8:
		moment.Data8 = make([]uint8, gates)
		if _, err := io.ReadFull(r, moment.Data8); err != nil {
			return nil, err
		}
	case 16:
		moment.Data16 = make([]uint16, gates)
		if err := binary.Read(r, binary.BigEndian, moment.Data16); err != nil {
			return nil, err
		}
	default:
		// 12 bit words exist in the ICD but have never been observed in the
		// wild; eat the data so the stream stays aligned
		logrus.Warnf("unsupported data word size %d, skipping moment data", g.DataWordSize)
		if _, err := io.ReadFull(r, make([]byte, gates*int(g.DataWordSize)/8)); err != nil {
			return nil, err
		}
	}

	return moment, nil
}

// Moment returns the radial's moment block for the given block type, or nil.
func (r *Radial) Moment(bt BlockType) *MomentDataBlock {
	return r.Moments[bt]
}

// AzimuthResolutionSpacing returns the spacing in degrees
func (r *Radial) AzimuthResolutionSpacing() float64 {
	if r.Header.AzimuthResolutionSpacingCode == 1 {
		return 0.5
	}
	return 1
}

// VolumeData wraps information about the Volume being extracted (User 3.2.4.17.3)
type VolumeData struct {
	// data block type and data moment name are retrieved separately
	LRTUP                          uint16 // LRTUP Size of data block in bytes
	VersionMajor                   uint8
	VersionMinor                   uint8
	Lat                            float32
	Long                           float32
	SiteHeight                     uint16
	FeedhornHeight                 uint16
	CalibrationConstant            float32
	SHVTXPowerHor                  float32
	SHVTXPowerVer                  float32
	SystemDifferentialReflectivity float32
	InitialSystemDifferentialPhase float32
	VolumeCoveragePatternNumber    uint16
	ProcessingStatus               uint16
}

// ElevationData wraps Message 31 elevation data (User 3.2.4.17.4)
type ElevationData struct {
	// data block type and data moment name are retrieved separately
	LRTUP      uint16  // LRTUP Size of data block in bytes
	ATMOS      [2]byte // ATMOS Atmospheric Attenuation Factor
	CalibConst float32 // CalibConst Scaling constant used by the Signal Processor for this elevation to calculate reflectivity
}

// RadialStatusData wraps Message 31 radial data (User 3.2.4.17.5)
type RadialStatusData struct {
	// data block type and data moment name are retrieved separately
	LRTUP              uint16 // LRTUP Size of data block in bytes
	UnambiguousRange   uint16 // UnambiguousRange, Interval Size
	NoiseLevelHorz     float32
	NoiseLevelVert     float32
	NyquistVelocity    uint16
	Spares             [2]byte
	CalibConstHorzChan float32
	CalibConstVertChan float32
}
