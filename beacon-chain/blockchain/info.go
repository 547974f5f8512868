package blockchain

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/emicklei/dot"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
)

const template = `<html>
<head>
    <script src="//cdnjs.cloudflare.com/ajax/libs/viz.js/2.1.2/viz.js"></script>
    <script src="//cdnjs.cloudflare.com/ajax/libs/viz.js/2.1.2/full.render.js"></script>
<body>
    <script type="application/javascript">
        var graph = ` + "`%s`;" + `
        var viz = new Viz();
        viz.renderSVGElement(graph) // reading the graph.
            .then(function(element) {
                document.body.appendChild(element); // appends to document.
            })
            .catch(error => {
                // Create a new Viz instance (@see Caveats page for more info)
                viz = new Viz();
                // Possibly display the error
                console.error(error);
            });
    </script>
</head>
</body>
</html>`

// HeadsHandler is a handler to serve /heads page in metrics.
func (s *Service) HeadsHandler(w http.ResponseWriter, r *http.Request) {
	heads, err := s.headSummaries(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintf(w, "\n %s\t%s\t%s\t%s\t", "Head slot", "Head root", "Justified", "Finalized"); err != nil {
		logrus.WithError(err).Error("Failed to render chain heads page")
		return
	}
	if _, err := fmt.Fprintf(w, "\n %s\t%s\t%s\t%s\t", "---------", "---------", "---------", "---------"); err != nil {
		logrus.WithError(err).Error("Failed to render chain heads page")
		return
	}
	for _, h := range heads {
		if _, err := fmt.Fprintf(w, "\n %d\t\t%s\t%d\t\t%d\t", h.slot, shortRoot(h.root), h.justified.Epoch, h.finalized.Epoch); err != nil {
			logrus.WithError(err).Error("Failed to render chain heads page")
			return
		}
	}
}

// TreeHandler is a handler to serve /tree page in metrics.
func (s *Service) TreeHandler(w http.ResponseWriter, r *http.Request) {
	graph, err := s.TreeGraph(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintf(w, template, graph.String()); err != nil {
		log.WithError(err).Error("Failed to render tree page")
	}
}

type headSummary struct {
	root      [32]byte
	slot      primitives.Slot
	justified ethpb.Checkpoint
	finalized ethpb.Checkpoint
}

// headSummaries returns every fork head with its chain finality, highest slot first.
func (s *Service) headSummaries(ctx context.Context) ([]headSummary, error) {
	heads, err := s.cfg.BeaconDB.HeadBlockRoots(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]headSummary, 0, len(heads))
	for _, h := range heads {
		blk, err := s.cfg.BeaconDB.Block(ctx, h)
		if err != nil {
			return nil, err
		}
		if blk == nil {
			return nil, errors.Errorf("missing head block %#x", h)
		}
		res, err := s.ChainFinality(ctx, h)
		if err != nil {
			return nil, err
		}
		j, _ := res.LatestJustified()
		f, _ := res.LatestFinalized()
		summaries = append(summaries, headSummary{root: h, slot: blk.Slot, justified: j, finalized: f})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].slot > summaries[j].slot
	})
	return summaries, nil
}

// TreeGraph renders every stored block as a node pointing to its parent. Fork
// heads are green, and the justified and finalized checkpoints of each head's
// chain are drawn in blue and red.
func (s *Service) TreeGraph(ctx context.Context) (*dot.Graph, error) {
	roots, err := s.cfg.BeaconDB.BlockRoots(ctx)
	if err != nil {
		return nil, err
	}
	heads, err := s.headSummaries(ctx)
	if err != nil {
		return nil, err
	}
	justified := make(map[[32]byte]bool)
	finalized := make(map[[32]byte]bool)
	isHead := make(map[[32]byte]bool)
	for _, h := range heads {
		isHead[h.root] = true
		res, err := s.ChainFinality(ctx, h.root)
		if err != nil {
			return nil, err
		}
		for i := 0; i < res.Len(); i++ {
			if res.Finalized(i) {
				finalized[res.Checkpoint(i).Root] = true
			} else if res.Justified(i) {
				justified[res.Checkpoint(i).Root] = true
			}
		}
	}

	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "RL")
	graph.Attr("labeljust", "l")

	parents := make(map[[32]byte][32]byte, len(roots))
	nodes := make(map[[32]byte]dot.Node, len(roots))
	for _, r := range roots {
		blk, err := s.cfg.BeaconDB.Block(ctx, r)
		if err != nil {
			return nil, err
		}
		if blk == nil {
			continue
		}
		slot := strconv.FormatUint(uint64(blk.Slot), 10)
		label := "slot: " + slot + "\n root: " + shortRoot(r) + "\n attestations: " + strconv.Itoa(len(blk.Body.Attestations))
		n := graph.Node(shortRoot(r)).Box().Attr("label", label)
		switch {
		case isHead[r]:
			n = n.Attr("color", "green")
		case finalized[r]:
			n = n.Attr("color", "red")
		case justified[r]:
			n = n.Attr("color", "blue")
		}
		nodes[r] = n
		parents[r] = blk.ParentRoot
	}
	for r, p := range parents {
		parent, ok := nodes[p]
		if !ok {
			continue
		}
		graph.Edge(nodes[r], parent)
	}
	return graph, nil
}
