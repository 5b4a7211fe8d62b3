package netfile

import (
	"github.com/charmbracelet/log"
)

// dateLayout matches the asctime() strings written by earlier releases.
const dateLayout = "Mon Jan _2 15:04:05 2006"

// V1 is the format of the first released networks: a pickled dict with no
// timestamp or platform table. Its upgrade fills in node fields that did
// not exist yet.
func V1() *Codec {
	return &Codec{
		Tag:     "1",
		Family:  Legacy,
		Stamp:   stampV1,
		Upgrade: upgradeV1,
	}
}

// V2 adds the save date and platform table to the pickled dict. Its
// documents are already current-shaped.
func V2() *Codec {
	return &Codec{
		Tag:     "2",
		Family:  Legacy,
		Stamp:   stampV2,
		Upgrade: logProvenance,
	}
}

// V3 carries the same content as V2 as UTF-8 structured text behind a
// one-line preamble.
func V3() *Codec {
	return &Codec{
		Tag:      "3",
		Family:   Text,
		Stamp:    stampV2,
		Upgrade:  logProvenance,
		Preamble: func(tag string, env Env) string { return Preamble(env.AppVersion, tag) },
	}
}

func stampV1(raw Document, tag string, env Env) {
	raw[KeyNetworkVersion] = tag
	raw[KeyAppVersion] = env.AppVersion
	raw[KeyHeader] = HeaderText
}

func stampV2(raw Document, tag string, env Env) {
	stampV1(raw, tag, env)
	raw[KeyDateTime] = env.Now().Format(dateLayout)

	table := env.Platform.Table()
	platform := make(map[string]any, len(table))
	for k, v := range table {
		platform[k] = v
	}
	raw[KeyPlatform] = platform
}

// upgradeV1 gives every node an empty match key and zeroed timing fields.
// An empty key makes the node lookup fall back to the best match. Fields
// already present are left alone so the upgrade can run any number of times.
func upgradeV1(doc Document, logger *log.Logger) {
	logger.Warn("network file info", Describe(doc).KeyVals()...)

	defaults := []struct{ key, value string }{
		{KeyNodeMatch, ""},
		{KeyNodeWallTime, "0"},
		{KeyNodeAvgWallTime, "0"},
		{KeyNodeStdWallTime, "0"},
	}
	for _, entry := range doc.NodeList() {
		node, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		for _, d := range defaults {
			if _, ok := node[d.key]; !ok {
				node[d.key] = d.value
			}
		}
	}
}

func logProvenance(doc Document, logger *log.Logger) {
	logger.Info("network file info", Describe(doc).KeyVals()...)
}
