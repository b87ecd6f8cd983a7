package domain

const (
	// Gateway constants
	DEFAULT_IPFS_GATEWAY    = "https://ipfs.io"
	DEFAULT_ARWEAVE_GATEWAY = "https://arweave.net"

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// BPS_DENOMINATOR is the basis point denominator (100%)
	BPS_DENOMINATOR = 10_000

	// Rights bitmask recorded on a license at mint time
	RIGHT_API      uint8 = 1 << 0
	RIGHT_DOWNLOAD uint8 = 1 << 1
)
