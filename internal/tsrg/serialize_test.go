package tsrg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapconv/internal/hierarchy"
	"mapconv/internal/mapping"
	"mapconv/internal/merge"
)

func table(t *testing.T, text string, edges ...hierarchy.Edge) *merge.Table {
	t.Helper()

	m, err := mapping.Parse([]byte(text))
	require.NoError(t, err)

	_, err = hierarchy.Attach(m, edges)
	require.NoError(t, err)

	tbl, err := merge.Merge(m, hierarchy.Build(m))
	require.NoError(t, err)

	return tbl
}

const entityMapping = `
net.minecraft.world.entity.Entity -> bsr:
    int tickCount -> ai
    net.minecraft.world.level.Level level -> t
    void tick() -> l
    boolean hurt(net.minecraft.world.damagesource.DamageSource,float) -> a
net.minecraft.world.entity.LivingEntity -> bsw:
    void tick() -> m
net.minecraft.world.level.Level -> dcw:
`

func TestSerializeObfToNamed(t *testing.T) {
	tbl := table(t, entityMapping, hierarchy.Edge{
		Class: "net.minecraft.world.entity.LivingEntity",
		Super: "net.minecraft.world.entity.Entity",
	})

	out, err := Serialize(context.Background(), tbl)
	require.NoError(t, err)

	want := strings.Join([]string{
		"bsr net/minecraft/world/entity/Entity",
		"\tt level",
		"\tai tickCount",
		"\ta (Lnet/minecraft/world/damagesource/DamageSource;F)Z hurt",
		"\tl ()V tick",
		"bsw net/minecraft/world/entity/LivingEntity",
		"\tt level",
		"\tai tickCount",
		"\ta (Lnet/minecraft/world/damagesource/DamageSource;F)Z hurt",
		"\tm ()V tick",
		"dcw net/minecraft/world/level/Level",
		"",
	}, "\n")
	assert.Equal(t, want, string(out))
}

func TestSerializeRenamesDescriptorClasses(t *testing.T) {
	tbl := table(t, `
a.Level -> x:
a.Entity -> y:
    a.Level[] levels(a.Level,java.util.List,int[][]) -> b
`)

	out, err := Serialize(context.Background(), tbl)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\tb (Lx;Ljava/util/List;[[I)[Lx; levels\n")

	out, err = Serialize(context.Background(), tbl, WithDirection(NamedToObf))
	require.NoError(t, err)
	assert.Contains(t, string(out), "a/Entity y\n")
	assert.Contains(t, string(out), "\tlevels (La/Level;Ljava/util/List;[[I)[La/Level; b\n")
}

func TestSerializeNamedToObf(t *testing.T) {
	tbl := table(t, `
a.A -> q:
    int count -> c
    void run() -> r
`)

	out, err := Serialize(context.Background(), tbl, WithDirection(NamedToObf))
	require.NoError(t, err)
	assert.Equal(t, "a/A q\n\tcount c\n\trun ()V r\n", string(out))
}

func TestSerializeEmptyTable(t *testing.T) {
	out, err := Serialize(context.Background(), table(t, ""))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSerializeParallelMatchesSequential(t *testing.T) {
	var b strings.Builder

	var edges []hierarchy.Edge

	for i := range 200 {
		fmt.Fprintf(&b, "p.C%03d -> c%d:\n", i, i)
		fmt.Fprintf(&b, "    int f%d -> a\n", i)
		fmt.Fprintf(&b, "    p.C000 m%d(int,p.C001) -> b\n", i)

		if i > 0 {
			edges = append(edges, hierarchy.Edge{
				Class: fmt.Sprintf("p.C%03d", i),
				Super: fmt.Sprintf("p.C%03d", i-1),
			})
		}
	}

	tbl := table(t, b.String(), edges...)

	sequential, err := Serialize(context.Background(), tbl, WithWorkers(1))
	require.NoError(t, err)

	again, err := Serialize(context.Background(), tbl, WithWorkers(1))
	require.NoError(t, err)
	require.Equal(t, sequential, again)

	for _, workers := range []int{0, 2, 8, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			parallel, err := Serialize(context.Background(), tbl, WithWorkers(workers))
			require.NoError(t, err)
			assert.Equal(t, sequential, parallel)
		})
	}
}

func TestSerializeCanceled(t *testing.T) {
	tbl := table(t, "a.A -> a:\na.B -> b:\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := Serialize(ctx, tbl, WithWorkers(2))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
}

func TestSerializeRejectsUnknownDirection(t *testing.T) {
	_, err := Serialize(context.Background(), table(t, "a.A -> a:\n"), WithDirection(Direction(7)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Direction(7)")
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{in: "", want: ObfToNamed},
		{in: "obf-to-named", want: ObfToNamed},
		{in: "named-to-obf", want: NamedToObf},
		{in: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Direction {
	t.Helper()

	d, err := ParseDirection(s)
	require.NoError(t, err)

	return d
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings", "1.21", "client.tsrg")

	require.NoError(t, WriteFile(path, []byte("a b\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a b\n", string(data))
}
