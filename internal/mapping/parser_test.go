package mapping

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapconv/internal/diagnostic"
)

const sampleMapping = `# {"fileName":"client.txt","id":"sourceFile"}
# generated header
net.minecraft.world.entity.Entity -> bsr:
    int id -> o
    java.util.UUID uuid -> aj
    net.minecraft.world.level.Level level -> t
    12:15:void tick() -> h
    40:52:boolean hurt(net.minecraft.world.damagesource.DamageSource,float) -> a
    net.minecraft.world.entity.Entity[] getPassengers() -> cL

net.minecraft.world.entity.LivingEntity -> bsw:
    float health -> bR
    20:21:void tick() -> h
    boolean hurt(net.minecraft.world.damagesource.DamageSource,float) -> a
net.minecraft.world.level.Level -> dwm:
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleMapping))
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{
		"net.minecraft.world.entity.Entity",
		"net.minecraft.world.entity.LivingEntity",
		"net.minecraft.world.level.Level",
	}, m.Names())

	entity, ok := m.Class("net.minecraft.world.entity.Entity")
	require.True(t, ok)
	assert.Equal(t, "bsr", entity.Obfuscated)
	assert.Equal(t, 3, entity.Line)
	require.Len(t, entity.Fields, 3)
	require.Len(t, entity.Methods, 3)

	// Fields
	assert.Equal(t, "id", entity.Fields[0].Name)
	assert.Equal(t, "o", entity.Fields[0].Obfuscated)
	assert.Equal(t, "int", entity.Fields[0].Type)
	assert.Equal(t, "I", entity.Fields[0].Descriptor())
	assert.Equal(t, "Ljava/util/UUID;", entity.Fields[1].Descriptor())

	// Method with line range
	tick := entity.Methods[0]
	assert.Equal(t, "tick", tick.Name)
	assert.Equal(t, "h", tick.Obfuscated)
	assert.Equal(t, "void", tick.Return)
	assert.Empty(t, tick.Params)
	assert.Equal(t, "()V", tick.Descriptor())
	require.NotNil(t, tick.Lines)
	assert.Equal(t, LineRange{Start: 12, End: 15}, *tick.Lines)

	// Method with parameters
	hurt, ok := entity.Method("hurt", "(Lnet/minecraft/world/damagesource/DamageSource;F)Z")
	require.True(t, ok)
	assert.Equal(t, "a", hurt.Obfuscated)
	assert.Equal(t, []string{"net.minecraft.world.damagesource.DamageSource", "float"}, hurt.Params)

	passengers := entity.Methods[2]
	assert.Nil(t, passengers.Lines)
	assert.Equal(t, "()[Lnet/minecraft/world/entity/Entity;", passengers.Descriptor())

	byObf, ok := m.ByObfuscated("bsw")
	require.True(t, ok)
	assert.Equal(t, "net.minecraft.world.entity.LivingEntity", byObf.Original)

	level, _ := m.Class("net.minecraft.world.level.Level")
	assert.Empty(t, level.Fields)
	assert.Empty(t, level.Methods)

	assert.Equal(t, Stats{Classes: 3, Fields: 4, Methods: 5}, m.Stats())
}

func TestParseFieldWithoutType(t *testing.T) {
	m, err := Parse([]byte("a.B -> c:\n    count -> d\n"))
	require.NoError(t, err)

	c, _ := m.Class("a.B")
	require.Len(t, c.Fields, 1)
	assert.Equal(t, "", c.Fields[0].Type)
	assert.Equal(t, "", c.Fields[0].Descriptor())
}

func TestParseCRLFAndTabs(t *testing.T) {
	m, err := Parse([]byte("a.B -> c:\r\n\tint x -> y\r\n\tvoid run() -> z\r\n"))
	require.NoError(t, err)

	c, _ := m.Class("a.B")
	require.Len(t, c.Fields, 1)
	require.Len(t, c.Methods, 1)
	assert.Equal(t, "y", c.Fields[0].Obfuscated)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     error
		line     int
		contains string
	}{
		{
			name:  "member before class",
			input: "    int x -> y\n",
			kind:  diagnostic.ErrMalformedMapping,
			line:  1,
		},
		{
			name:  "duplicate class",
			input: "a.B -> c:\n    int x -> y\na.B -> d:\n",
			kind:  diagnostic.ErrDuplicateClassMapping,
			line:  3,
		},
		{
			name:  "duplicate field",
			input: "a.B -> c:\n    int x -> y\n    long x -> z\n",
			kind:  diagnostic.ErrDuplicateMemberMapping,
			line:  3,
		},
		{
			name:  "duplicate method",
			input: "a.B -> c:\n    void run() -> y\n    1:2:void run() -> z\n",
			kind:  diagnostic.ErrDuplicateMemberMapping,
			line:  3,
		},
		{
			name:  "class line without colon",
			input: "a.B -> c\n",
			kind:  diagnostic.ErrMalformedMapping,
			line:  1,
		},
		{
			name:  "missing arrow",
			input: "a.B -> c:\n    int x y\n",
			kind:  diagnostic.ErrMalformedMapping,
			line:  2,
		},
		{
			name:  "bad parameter type",
			input: "a.B -> c:\n\n    void run(int[) -> y\n",
			kind:  diagnostic.ErrMalformedTypeName,
			line:  3,
		},
		{
			name:  "bad field type is still a malformed mapping",
			input: "a.B -> c:\n    java.util.List<String> x -> y\n",
			kind:  diagnostic.ErrMalformedMapping,
			line:  2,
		},
		{
			name:  "void field",
			input: "a.B -> c:\n    void x -> y\n",
			kind:  diagnostic.ErrMalformedTypeName,
			line:  2,
		},
		{
			name:  "unterminated parameter list",
			input: "a.B -> c:\n    void run(int -> y\n",
			kind:  diagnostic.ErrMalformedMapping,
			line:  2,
		},
		{
			name:  "line range on field",
			input: "a.B -> c:\n    1:2:int x -> y\n",
			kind:  diagnostic.ErrMalformedMapping,
			line:  2,
		},
		{
			name:  "bad line range",
			input: "a.B -> c:\n    1x:2:void run() -> y\n",
			kind:  diagnostic.ErrMalformedMapping,
			line:  2,
		},
		{
			name:  "primitive class name",
			input: "int -> c:\n",
			kind:  diagnostic.ErrMalformedMapping,
			line:  1,
		},
		{
			name:     "obfuscated collision",
			input:    "a.B -> c:\n    void run() -> y\n    void walk() -> y\n",
			kind:     diagnostic.ErrDuplicateMemberMapping,
			line:     3,
			contains: "also used by method run()V",
		},
		{
			name:     "obfuscated field collision",
			input:    "a.B -> c:\n    int x -> y\n    void run() -> r\n    int z -> y\n",
			kind:     diagnostic.ErrDuplicateMemberMapping,
			line:     4,
			contains: "line 4: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.kind)

			var de *diagnostic.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.line, de.Line)

			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestParseAllowRedundant(t *testing.T) {
	input := "a.B -> c:\n    int x -> y\n    int x -> y\n    void run() -> z\n    1:1:void run() -> z\n"

	_, err := Parse([]byte(input))
	require.ErrorIs(t, err, diagnostic.ErrDuplicateMemberMapping)

	m, err := Parse([]byte(input), AllowRedundant())
	require.NoError(t, err)

	c, _ := m.Class("a.B")
	assert.Len(t, c.Fields, 1)
	assert.Len(t, c.Methods, 1)

	_, err = Parse([]byte("a.B -> c:\n    void run() -> z\n    void run() -> w\n"), AllowRedundant())
	assert.ErrorIs(t, err, diagnostic.ErrDuplicateMemberMapping)
}

func TestFormatRoundTrip(t *testing.T) {
	m, err := Parse([]byte(sampleMapping))
	require.NoError(t, err)

	formatted := Format(m)
	assert.True(t, strings.HasPrefix(string(formatted), "net.minecraft.world.entity.Entity -> bsr:\n    int id -> o\n"))
	assert.Contains(t, string(formatted), "    12:15:void tick() -> h\n")
	assert.Contains(t, string(formatted),
		"    boolean hurt(net.minecraft.world.damagesource.DamageSource,float) -> a\n")

	again, err := Parse(formatted)
	require.NoError(t, err)
	assert.Equal(t, string(formatted), string(Format(again)))
	assert.Equal(t, m.Stats(), again.Stats())
}

func TestValidateWarnsOnSharedClassName(t *testing.T) {
	m, err := Parse([]byte("a.B -> c:\na.D -> c:\n"))
	require.NoError(t, err)

	diags := Validate(m)
	assert.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "a.D", diags.Warnings[0].Class)
	assert.Equal(t, 2, diags.Warnings[0].Line)
	assert.True(t, strings.HasPrefix(diags.Warnings[0].String(), "line 2 [a.D]: "))

	// Reverse lookup keeps the first class.
	c, _ := m.ByObfuscated("c")
	assert.Equal(t, "a.B", c.Original)
}

func TestAddMethodOnLiteralClass(t *testing.T) {
	c := &ClassEntry{Original: "a.B", Obfuscated: "c"}
	require.NoError(t, c.AddMethod(&MethodEntry{Name: "run", Obfuscated: "r", Return: "void"}))
	require.NoError(t, c.AddField(&FieldEntry{Name: "x", Obfuscated: "y"}))

	_, ok := c.Method("run", "()V")
	assert.True(t, ok)
}
