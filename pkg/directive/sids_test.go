package directive

import (
	"strings"
	"testing"

	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRules(t *testing.T) {
	data := []byte(DefaultLine + "\n" +
		"\n" +
		"# alert tcp any any -> any 23 (msg:\"telnet\"; sid:1000009; rev:1;)\n" +
		`alert tcp any any -> 192.168.1.10 80 (msg:"web"; sid:1000002; rev:1;)` + "\n")

	scan := ScanRules("web.rules", data)
	assert.Equal(t, 2, scan.Directives)
	assert.Equal(t, []uint64{1000001, 1000002}, scan.SIDs)
	assert.Empty(t, scan.Issues)
}

func TestScanRulesEmpty(t *testing.T) {
	scan := ScanRules("empty.rules", nil)
	assert.Zero(t, scan.Directives)
	assert.Empty(t, scan.SIDs)
}

func TestScanRulesReportsIssues(t *testing.T) {
	data := []byte("this is not a rule\n" + DefaultLine + "\n")

	scan := ScanRules("broken.rules", data)
	assert.Equal(t, 1, scan.Directives)
	assert.Equal(t, []uint64{1000001}, scan.SIDs)
	require.Len(t, scan.Issues, 1)
	assert.Equal(t, "broken.rules", scan.Issues[0].File)
}

func TestScanRulesSkipsMalformedLine(t *testing.T) {
	data := []byte(DefaultLine + "\n" +
		`alert tcp any any => any 80 (msg:"bad direction"; sid:5; rev:1;)` + "\n" +
		`alert udp any any -> any 53 (msg:"dns"; sid:1000003; rev:1;)` + "\n")

	scan := ScanRules("mixed.rules", data)
	assert.Equal(t, []uint64{1000001, 1000003}, scan.SIDs)
	assert.Equal(t, 2, scan.Directives)
	require.Len(t, scan.Issues, 1)
	assert.Equal(t, "mixed.rules", scan.Issues[0].File)
}

func TestScanRulesLongLine(t *testing.T) {
	long := `alert tcp any any -> any any (msg:"` + strings.Repeat("A", 2<<20) + `"; sid:41; rev:1;)`
	data := []byte(long + "\n" +
		`alert tcp any any -> any 80 (msg:"after"; sid:42; rev:1;)` + "\n")

	scan := ScanRules("long.rules", data)
	assert.Equal(t, 2, scan.Directives)
	assert.Equal(t, []uint64{41, 42}, scan.SIDs)
	assert.Empty(t, scan.Issues)
}

func TestSIDIndexConflicts(t *testing.T) {
	scan := func(lines ...string) Scan {
		return ScanRules("", []byte(strings.Join(lines, "\n")+"\n"))
	}
	web := `alert tcp any any -> any 80 (msg:"web"; sid:1000002; rev:1;)`
	dns := `alert udp any any -> any 53 (msg:"dns"; sid:1000003; rev:1;)`

	idx := SIDIndex{}
	idx.Add("web.rules", scan(DefaultLine, web))
	idx.Add("dns.rules", scan(DefaultLine, dns, `alert udp any any -> any 53 (msg:"dns again"; sid:1000002; rev:1;)`))
	idx.Add("dup.rules", scan(
		`alert ip any any -> any any (msg:"one"; sid:7; rev:1;)`,
		`alert ip any any -> any any (msg:"two"; sid:7; rev:1;)`,
	))
	idx.Add("copy.rules", scan(dns, dns))

	conflicts := idx.Conflicts()
	require.Len(t, conflicts, 2)
	assert.Equal(t, SIDConflict{SID: 7, Files: []string{"dup.rules", "dup.rules"}}, conflicts[0])
	assert.Equal(t, SIDConflict{SID: 1000002, Files: []string{"dns.rules", "web.rules"}}, conflicts[1])

	err := ConflictError(conflicts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSIDConflict))
	assert.True(t, errors.IsValidation(err))

	assert.NoError(t, ConflictError(nil))
}
