package cli

import (
	"context"

	"github.com/roach88/astrodigest/internal/canon"
	"github.com/roach88/astrodigest/internal/store"
)

// saveDigest persists a built payload to the snapshot store, extracting the
// summary columns (subject, chart ids) from the payload itself.
func saveDigest(ctx context.Context, dbPath, id string, data []byte, payload canon.Object, source string) (store.RunRecord, error) {
	s, err := store.Open(dbPath)
	if err != nil {
		return store.RunRecord{}, err
	}
	defer s.Close()

	rec := store.DigestRecord{
		ID:        id,
		SchemaVer: stringField(payload, "schemaVer"),
		Format:    stringField(objectField(payload, "metadata"), "format"),
		Subject:   stringField(objectField(objectField(payload, "metadata"), "birth"), "name"),
		ChartIDs:  chartIDs(payload),
		Payload:   data,
	}
	return s.SaveDigest(ctx, rec, source)
}

// stringField extracts a string field from a payload object, or "".
func stringField(o canon.Object, key string) string {
	v, ok := o.Get(key)
	if !ok {
		return ""
	}
	s, ok := v.(canon.String)
	if !ok {
		return ""
	}
	return string(s)
}

// objectField extracts a nested object field, or an empty generic object.
func objectField(o canon.Object, key string) canon.Object {
	v, ok := o.Get(key)
	if !ok {
		return canon.NewObject(canon.KindGeneric)
	}
	obj, ok := v.(canon.Object)
	if !ok {
		return canon.NewObject(canon.KindGeneric)
	}
	return obj
}

// chartIDs lists the chart ids present in a payload, in payload order.
func chartIDs(payload canon.Object) []string {
	v, ok := payload.Get("charts")
	if !ok {
		return nil
	}
	arr, ok := v.(canon.Array)
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(arr))
	for _, elem := range arr {
		chart, ok := elem.(canon.Object)
		if !ok {
			continue
		}
		if id := stringField(chart, "id"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
