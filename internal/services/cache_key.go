package services

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"trip-allocation-service/internal/allocation"
	"trip-allocation-service/internal/domain"
)

const cacheKeyPrefix = "alloc:v1:"

type digest struct {
	d   *xxhash.Digest
	buf [8]byte
}

func (g *digest) u64(v uint64) {
	binary.LittleEndian.PutUint64(g.buf[:], v)
	g.d.Write(g.buf[:])
}

func (g *digest) present(ok bool) bool {
	if ok {
		g.d.Write([]byte{1})
	} else {
		g.d.Write([]byte{0})
	}
	return ok
}

func (g *digest) float(f *float64) {
	if g.present(f != nil) {
		g.u64(math.Float64bits(*f))
	}
}

// AllocationKey digests everything that decides an allocation: the search
// policy, the capacity and the records in order. Record order matters because
// it breaks seed and nearest-candidate ties.
func AllocationKey(p allocation.Policy, capacityKg float64, records []domain.OrderRecord) string {
	g := &digest{d: xxhash.New()}

	g.u64(uint64(p.ExactPoolLimit))
	g.u64(uint64(p.NearestSample))
	g.u64(uint64(p.SeedSample))
	g.u64(uint64(p.NeighborSample))
	g.u64(math.Float64bits(p.DensityRadiusKm))
	g.u64(math.Float64bits(capacityKg))
	g.u64(uint64(len(records)))

	for _, r := range records {
		if g.present(r.OrderID != nil) {
			g.u64(uint64(*r.OrderID))
		}
		g.float(r.Latitude)
		g.float(r.Longitude)
		if g.present(r.Pincode != nil) {
			g.u64(uint64(len(*r.Pincode)))
			g.d.WriteString(*r.Pincode)
		}
		g.float(r.TotalWeightKg)
	}

	return fmt.Sprintf("%s%016x", cacheKeyPrefix, g.d.Sum64())
}
