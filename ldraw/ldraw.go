// Package ldraw parses LDraw documents, including multi-part (MPD)
// files, into the model dictionary consumed by the validation engine.
//
// Only the line types the engine needs are interpreted: type 1
// sub-file references and the FILE/NOFILE meta commands that delimit
// MPD blocks. Mesh lines (types 2-5) belong to the catalog tooling
// and are skipped here.
//
// LDraw's coordinate system has -Y pointing up. The parser converts to
// the engine's +Y-up convention by conjugating every placement with a
// Y mirror, which preserves matrix determinants.
package ldraw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/akmonengine/mortar/brick"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultModelName names the implicit model of a non-MPD document.
const DefaultModelName = "main"

// Document is a parsed LDraw file: the model dictionary plus the name
// of the root model (the first model defined).
type Document struct {
	Models map[string]*brick.Model
	Root   string
}

// ParseFile reads and parses an LDraw or MPD file.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads an LDraw document. Model names are lowercased; part
// references drop their .dat/.ldr extension, keeping submodel
// references resolvable against the dictionary keys.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{Models: make(map[string]*brick.Model)}

	current := &brick.Model{Name: DefaultModelName}
	isMPD := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "0":
			if len(fields) < 2 {
				continue
			}
			switch fields[1] {
			case "FILE":
				isMPD = true
				name := strings.ToLower(strings.Join(fields[2:], " "))
				current = &brick.Model{Name: name}
				doc.Models[name] = current
				if doc.Root == "" {
					doc.Root = name
				}
			case "NOFILE":
				// End of the current MPD block.
			}
		case "1":
			p, err := parseReference(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current.Placements = append(current.Placements, p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !isMPD {
		doc.Models[DefaultModelName] = current
		doc.Root = DefaultModelName
	}
	return doc, nil
}

// parseReference decodes a type 1 line:
//
//	1 <color> x y z a b c d e f g h i <file>
//
// where a..i is a row-major 3x3 rotation and the filename may contain
// spaces.
func parseReference(fields []string) (brick.Placement, error) {
	if len(fields) < 15 {
		return brick.Placement{}, fmt.Errorf("short sub-file reference (%d fields)", len(fields))
	}

	color, err := strconv.Atoi(fields[1])
	if err != nil {
		return brick.Placement{}, fmt.Errorf("color %q: %w", fields[1], err)
	}

	var v [12]float64
	for i := range v {
		v[i], err = strconv.ParseFloat(fields[2+i], 64)
		if err != nil {
			return brick.Placement{}, fmt.Errorf("number %q: %w", fields[2+i], err)
		}
	}

	name := strings.ToLower(strings.Join(fields[14:], " "))
	name = strings.TrimSuffix(name, ".dat")

	// Position (x, y, z) then rows r0..r8. Conjugating with the Y
	// mirror negates the position's Y and the matrix entries mixing Y
	// with X or Z.
	pos := mgl64.Vec3{v[0], -v[1], v[2]}
	r := v[3:]
	rot := mgl64.Mat3{
		r[0], -r[3], r[6], // column 0
		-r[1], r[4], -r[7], // column 1
		r[2], -r[5], r[8], // column 2
	}

	return brick.Placement{
		PartID:    name,
		Color:     color,
		Transform: brick.Transform{Position: pos, Rotation: rot},
	}, nil
}
