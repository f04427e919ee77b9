package common

import (
	"encoding/hex"
	"fmt"
	"strings"
)

//EncodeToString returns the UPPERCASE string representation of hexBytes with
//the 0X prefix
func EncodeToString(hexBytes []byte) string {
	return fmt.Sprintf("0X%X", hexBytes)
}

//DecodeFromString converts a hex string to a byte slice. The 0x or 0X prefix
//is optional.
func DecodeFromString(hexString string) ([]byte, error) {
	hexString = strings.TrimSpace(hexString)
	if strings.HasPrefix(hexString, "0x") || strings.HasPrefix(hexString, "0X") {
		hexString = hexString[2:]
	}
	return hex.DecodeString(hexString)
}
